package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestServiceEnvHidesSecrets(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Signer.Mnemonic = "test test test test test test test test test test test junk"
	cfg.Signer.Passphrase = "hunter2"
	cfg.Signer.PrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	out, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "junk")
	assert.NotContains(t, string(out), "hunter2")
	assert.NotContains(t, string(out), "ac0974bec39a17e3")
}

func TestValidate(t *testing.T) {
	valid := func() config.Server {
		cfg := config.DefaultServiceConfigFromEnv()
		cfg.Echo.ListenAddress = ":8080"
		cfg.Signer.CoinType = 60
		cfg.Signer.ApprovalMode = config.ApprovalModeQueue
		cfg.Signer.ApprovalTimeout = time.Minute
		cfg.Signer.Mnemonic = ""
		cfg.Signer.MnemonicFile = ""
		cfg.Signer.PrivateKey = ""
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := map[string]func(cfg *config.Server){
		"no listen address":     func(cfg *config.Server) { cfg.Echo.ListenAddress = "" },
		"unknown approval mode": func(cfg *config.Server) { cfg.Signer.ApprovalMode = "maybe" },
		"empty approval mode":   func(cfg *config.Server) { cfg.Signer.ApprovalMode = "" },
		"hardened coin type":    func(cfg *config.Server) { cfg.Signer.CoinType = 1 << 31 },
		"negative timeout":      func(cfg *config.Server) { cfg.Signer.ApprovalTimeout = -time.Second },
		"two secrets": func(cfg *config.Server) {
			cfg.Signer.Mnemonic = "a"
			cfg.Signer.PrivateKey = "b"
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	for _, mode := range []config.ApprovalMode{config.ApprovalModeTerminal, config.ApprovalModeReject} {
		cfg := valid()
		cfg.Signer.ApprovalMode = mode
		assert.NoError(t, cfg.Validate())
	}
}

func TestDotEnvLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(file, []byte("SIGNER_COIN_TYPE=118\nSIGNER_APPROVAL_MODE=reject\n"), 0o600))

	got := map[string]string{}
	err := config.DotEnvLoad(file, func(key string, value string) error {
		got[key] = value
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"SIGNER_COIN_TYPE": "118", "SIGNER_APPROVAL_MODE": "reject"}, got)

	err = config.DotEnvLoad(filepath.Join(dir, "missing"), func(string, string) error { return nil })
	require.Error(t, err)

	// must not panic on missing files
	config.DotEnvTryLoad(filepath.Join(dir, "missing"), func(string, string) error { return nil })
}

func TestGetFormattedBuildArgs(t *testing.T) {
	assert.Contains(t, config.GetFormattedBuildArgs(), config.ModuleName)
}
