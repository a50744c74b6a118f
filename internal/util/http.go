package util

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
)

// BindAndValidateBody decodes the JSON body into v and validates it. Unknown
// fields are rejected.
func BindAndValidateBody(c echo.Context, v any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.Wrap(err, "failed to read request body")
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to decode body")
		httpError := httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid JSON body.", err.Error())
		httpError.Internal = err
		return httpError
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the response payload before sending it
func ValidateAndReturn(c echo.Context, code int, v any) error {
	if err := ValidateStruct(v); err != nil {
		LogFromEchoContext(c).Error().Err(err).Msg("Response model is invalid")
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v any) error {
	err := ValidateStruct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	details := make([]*types.HTTPValidationErrorDetail, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, &types.HTTPValidationErrorDetail{
			Key:   swag.String(fieldError.Namespace()),
			In:    swag.String("body"),
			Error: swag.String(fieldError.Tag()),
		})
	}

	LogFromEchoContext(c).Debug().Err(err).Msg("Payload validation failed")

	httpError := httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Bad Request", details)
	httpError.Internal = err
	return httpError
}
