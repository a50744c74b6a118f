package test

import (
	"context"
	"testing"
	"time"

	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/router"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/wallet/confirm"
)

const (
	// Mnemonic is the well known development mnemonic test servers sign with
	//nolint:gosec // not a secret
	Mnemonic = "test test test test test test test test test test test junk"
	// Address is the address of Mnemonic at m/44'/60'/0'/0/0
	Address = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	// PublicKey is the compressed public key of Mnemonic at m/44'/60'/0'/0/0
	PublicKey = "038318535b54105d4a7aae60c08fc45f9687181b4fdfc625bd1a753fa7397fed75"
	// MgmtSecret is the management secret of test servers
	MgmtSecret = "test-mgmt-secret"
)

// DefaultTestConfig returns the config test servers use: signing with Mnemonic
// and approvals resolved via /api/v1/approvals
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Logger.PrettyPrintConsole = false
	cfg.Management.Secret = MgmtSecret
	cfg.Signer.CoinType = 60
	cfg.Signer.ApprovalMode = config.ApprovalModeQueue
	cfg.Signer.ApprovalTimeout = 5 * time.Second
	cfg.Signer.Mnemonic = Mnemonic
	cfg.Signer.MnemonicFile = ""
	cfg.Signer.Passphrase = ""
	cfg.Signer.PrivateKey = ""

	return cfg
}

// WithTestServer executes closure with a server whose sign requests are
// decided via its approval queue
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), nil, closure)
}

// WithTestServerApprover executes closure with a server deciding every sign
// request with approver
func WithTestServerApprover(t *testing.T, approver confirm.Approver, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), approver, closure)
}

// WithTestServerConfigurable executes closure with a server built from config.
// A nil approver decides sign requests via the server's approval queue.
func WithTestServerConfigurable(t *testing.T, config config.Server, approver confirm.Approver, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, config, approver)
	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

// NewTestServer wires a server with its routes attached. Servers with an
// explicit approver run on a mocked clock.
func NewTestServer(t *testing.T, config config.Server, approver confirm.Approver) *api.Server {
	t.Helper()

	var (
		s   *api.Server
		err error
	)
	if approver == nil {
		s, err = api.InitNewServer(config)
	} else {
		s, err = api.InitNewServerWithApprover(config, approver, t)
	}
	if err != nil {
		t.Fatalf("Failed to init server: %v", err)
	}

	router.Init(s)

	return s
}
