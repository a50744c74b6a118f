package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
)

type GenericPayload map[string]any

// PerformRequest runs method on path against the server's echo instance. A
// non-nil body is encoded as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body any, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil && len(req.Header.Get(echo.HeaderContentType)) == 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// PerformRequestWithMgmtSecret works like PerformRequest but authenticates with MgmtSecret
func PerformRequestWithMgmtSecret(t *testing.T, s *api.Server, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	headers := http.Header{}
	headers.Set(echo.HeaderAuthorization, "Bearer "+MgmtSecret)

	return PerformRequest(t, s, method, path, body, headers)
}

// ParseResponseAndValidate decodes the JSON response into v
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Body).Decode(v), "Failed to parse response %q", res.Body.String())
}

// RequireHTTPError requires the response to be the given error
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpErr *httperrors.HTTPError) types.PublicHTTPError {
	t.Helper()

	var response types.PublicHTTPError
	ParseResponseAndValidate(t, res, &response)

	require.Equal(t, int(swag.Int64Value(httpErr.Code)), res.Result().StatusCode)
	require.Equal(t, swag.Int64Value(httpErr.Code), swag.Int64Value(response.Code))
	require.Equal(t, swag.StringValue(httpErr.Type), swag.StringValue(response.Type))
	require.Equal(t, swag.StringValue(httpErr.Title), swag.StringValue(response.Title))

	return response
}
