package router

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

// HTTPErrorHandler renders every error as PublicHTTPError. Internal error
// messages never leave the server.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		util.LogFromEchoContext(c).Warn().Err(err).Msg("Error after response was committed")
		return
	}

	code := http.StatusInternalServerError
	var body any

	var (
		httpError           *httperrors.HTTPError
		httpValidationError *httperrors.HTTPValidationError
		echoError           *echo.HTTPError
	)

	switch {
	case errors.As(err, &httpValidationError):
		code = int(swag.Int64Value(httpValidationError.Code))
		body = httpValidationError.PublicHTTPValidationError
	case errors.As(err, &httpError):
		code = int(swag.Int64Value(httpError.Code))
		body = httpError.PublicHTTPError
	case errors.As(err, &echoError):
		code = echoError.Code
		body = httperrors.NewFromEcho(echoError).PublicHTTPError
	default:
		util.LogFromEchoContext(c).Error().Err(err).Msg("Unhandled error")
		body = httperrors.NewHTTPError(code, types.PublicHTTPErrorTypeGeneric, http.StatusText(code)).PublicHTTPError
	}

	if code >= http.StatusInternalServerError {
		util.LogFromEchoContext(c).Error().Err(err).Int("status", code).Msg("Request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		util.LogFromEchoContext(c).Error().Err(writeErr).Msg("Failed to write error response")
	}
}
