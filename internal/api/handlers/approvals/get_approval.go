package approvals

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/approval"
)

func GetApprovalRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Approvals.GET("/:requestId", getApprovalHandler(s))
}

func getApprovalHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Config.Signer.ApprovalMode != config.ApprovalModeQueue {
			return httperrors.ErrServiceUnavailableApprovals
		}

		request, err := s.Approvals.Get(c.Param("requestId"))
		if err != nil {
			if errors.Is(err, approval.ErrNotFound) {
				return httperrors.ErrNotFoundApproval
			}
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toApprovalRequest(request))
	}
}
