package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/util"
)

// LoggerConfig configures the request logger
type LoggerConfig struct {
	Skipper           middleware.Skipper
	Level             zerolog.Level
	LogRequestHeader  bool
	LogResponseHeader bool
}

// LoggerWithConfig attaches a request scoped logger carrying the request id to
// the request context and logs every request once it has been handled.
// Request bodies are never logged as they may carry transactions and secrets.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			logger := log.With().Str("id", id).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			event := util.LogFromEchoContext(c).WithLevel(config.Level).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start))

			if config.LogRequestHeader {
				event = event.Interface("req_header", req.Header)
			}
			if config.LogResponseHeader {
				event = event.Interface("res_header", res.Header())
			}
			if err != nil {
				event = event.Err(err)
			}

			event.Msg("Request handled")

			// already handled by c.Error
			return nil
		}
	}
}
