package approvals

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

func GetApprovalsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Approvals.GET("", getApprovalsHandler(s))
}

func getApprovalsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Config.Signer.ApprovalMode != config.ApprovalModeQueue {
			return httperrors.ErrServiceUnavailableApprovals
		}

		pending := s.Approvals.List()

		response := &types.ApprovalListResponse{
			Approvals: make([]*types.ApprovalRequest, 0, len(pending)),
		}
		for _, request := range pending {
			response.Approvals = append(response.Approvals, toApprovalRequest(request))
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
