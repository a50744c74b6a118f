package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/handlers/approvals"
	"github/chapool/go-txsigner/internal/api/handlers/common"
	"github/chapool/go-txsigner/internal/api/handlers/rpc"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		approvals.GetApprovalRoute(s),
		approvals.GetApprovalsRoute(s),
		approvals.PostApproveRoute(s),
		approvals.PostRejectRoute(s),
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		rpc.PostRPCRoute(s),
	}
}
