package common

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/middleware"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s), middleware.MgmtAuth(s.Config.Management.Secret))
}

// Health check
// Returns an overview of all probes, requires the management secret.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		str, errs := ProbeLiveness(ctx, s)
		if len(errs) > 0 {
			return c.String(StatusNotReady, strings.Join(str, "\n"))
		}

		return c.String(http.StatusOK, strings.Join(str, "\n"))
	}
}
