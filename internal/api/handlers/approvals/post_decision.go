package approvals

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/approval"
)

func PostApproveRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Approvals.POST("/:requestId/approve", postDecisionHandler(s, true))
}

func PostRejectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Approvals.POST("/:requestId/reject", postDecisionHandler(s, false))
}

func postDecisionHandler(s *api.Server, approve bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Config.Signer.ApprovalMode != config.ApprovalModeQueue {
			return httperrors.ErrServiceUnavailableApprovals
		}

		requestID := c.Param("requestId")
		log := util.LogFromEchoContext(c).With().Str("request_id", requestID).Bool("approved", approve).Logger()

		if err := s.Approvals.Resolve(requestID, approve); err != nil {
			if errors.Is(err, approval.ErrNotFound) {
				log.Debug().Msg("Approval request to resolve not found")
				return httperrors.ErrNotFoundApproval
			}
			return err
		}

		log.Info().Msg("Approval request resolved over HTTP")

		return util.ValidateAndReturn(c, http.StatusOK, &types.ApprovalDecisionResponse{
			RequestID: requestID,
			Approved:  approve,
		})
	}
}
