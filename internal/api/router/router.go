package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/handlers"
	"github/chapool/go-txsigner/internal/api/middleware"
	"github/chapool/go-txsigner/internal/util"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Logger.SetOutput(&echoLogWriter{})
	s.Echo.Validator = util.EchoValidator{}
	s.Echo.HTTPErrorHandler = HTTPErrorHandler

	// ---
	// General middleware
	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	} else {
		log.Warn().Msg("Disabling trailing slash middleware due to environment config")
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:             s.Config.Logger.RequestLevel,
			LogRequestHeader:  s.Config.Logger.LogRequestHeader,
			LogResponseHeader: s.Config.Logger.LogResponseHeader,
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if s.Config.Echo.EnableMetricsMiddleware {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "txsigner",
			Registerer: s.Metrics.Registry,
		}))
	} else {
		log.Warn().Msg("Disabling metrics middleware due to environment config")
	}

	s.Echo.Use(echoMiddleware.BodyLimit(s.Config.Echo.BodyLimit))

	// ---
	// Initialize our general groups and set middleware to use above them
	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, readiness is unsecured, everything else needs the management secret
		Management: s.Echo.Group("/-"),

		// JSON-RPC entrypoint at /rpc
		RPC: s.Echo.Group("/rpc"),

		// Deciding sign requests requires the management secret
		APIV1Approvals: s.Echo.Group("/api/v1/approvals", middleware.MgmtAuth(s.Config.Management.Secret)),
	}

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)
}

// echoLogWriter forwards echo's own log output to zerolog
type echoLogWriter struct{}

func (echoLogWriter) Write(p []byte) (int, error) {
	log.Warn().Str("component", "echo").Msg(string(p))
	return len(p), nil
}
