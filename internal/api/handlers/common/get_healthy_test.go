package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/test"
)

func TestGetHealthy(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Management.ProbeWriteablePathsAbs = []string{t.TempDir()}

	test.WithTestServerConfigurable(t, cfg, nil, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy?mgmt-secret="+test.MgmtSecret, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "Key source: initialized.")
		assert.Contains(t, res.Body.String(), "Writeable path")
	})
}

func TestGetHealthyUnwriteablePath(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Management.ProbeWriteablePathsAbs = []string{"/this/path/does/not/exist"}

	test.WithTestServerConfigurable(t, cfg, nil, func(s *api.Server) {
		res := test.PerformRequestWithMgmtSecret(t, s, "GET", "/-/healthy", nil)
		require.Equal(t, 521, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "failed")
	})
}

func TestGetHealthyRequiresMgmtSecret(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		assert.NotEqual(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/-/healthy?mgmt-secret=wrong", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}

func TestGetVersion(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithMgmtSecret(t, s, "GET", "/-/version", nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, config.GetFormattedBuildArgs(), res.Body.String())
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "txsigner_echo_requests_total")
		assert.Contains(t, res.Body.String(), "go_goroutines")
	})
}
