package api

import (
	"encoding/hex"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/metrics"
	"github/chapool/go-txsigner/internal/wallet/approval"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/seed"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewClock returns a mock clock frozen at 2021-06-04 in tests and the default clock otherwise
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Date(2021, 6, 4, 10, 0, 0, 0, time.UTC))
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

// NoTest is used by InitNewServer to satisfy NewClock's variadic argument
func NoTest() []*testing.T {
	return nil
}

// NewSeedManager initializes the key source from whichever secret the config carries.
// Without one the manager stays empty and signing fails with ErrEntropyUnavailable until it is initialized.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSeedManager(cfg config.Server) (seed.Manager, error) {
	manager := seed.NewManager()
	signerCfg := cfg.Signer

	switch {
	case signerCfg.PrivateKey != "":
		privateKey, err := hex.DecodeString(strings.TrimPrefix(signerCfg.PrivateKey, "0x"))
		if err != nil {
			return nil, errors.Wrap(keys.ErrInvalidKey, "private key is not hex")
		}
		defer wipe(privateKey)

		if err := manager.InitializePrivateKey(privateKey); err != nil {
			return nil, errors.Wrap(err, "failed to initialize key source from private key")
		}
	case signerCfg.Mnemonic != "":
		if err := manager.Initialize(signerCfg.Mnemonic, signerCfg.Passphrase, signerCfg.CoinType); err != nil {
			return nil, errors.Wrap(err, "failed to initialize key source from mnemonic")
		}
	case signerCfg.MnemonicFile != "":
		content, err := os.ReadFile(signerCfg.MnemonicFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read mnemonic file")
		}
		defer wipe(content)

		if err := manager.Initialize(string(content), signerCfg.Passphrase, signerCfg.CoinType); err != nil {
			return nil, errors.Wrap(err, "failed to initialize key source from mnemonic file")
		}
	default:
		log.Warn().Msg("No signing key configured, key source stays uninitialized")
	}

	return manager, nil
}

// NewApprovalQueue parks sign requests until they are resolved via /api/v1/approvals
func NewApprovalQueue(cfg config.Server, clock time2.Clock) *approval.Queue {
	return approval.NewQueue(cfg.Signer.ApprovalTimeout, clock)
}

// NewApprover picks the approver matching the configured approval mode
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewApprover(cfg config.Server, queue *approval.Queue) confirm.Approver {
	switch cfg.Signer.ApprovalMode {
	case config.ApprovalModeTerminal:
		return approval.NewTerminal(os.Stdin, os.Stderr)
	case config.ApprovalModeReject:
		return approval.AlwaysReject
	case config.ApprovalModeQueue:
		return queue
	default:
		log.Warn().Str("mode", string(cfg.Signer.ApprovalMode)).Msg("Unknown approval mode, rejecting all sign requests")
		return approval.AlwaysReject
	}
}

// NewGate wires the confirmation gate with the configured key source, reporting to metrics
func NewGate(
	approver confirm.Approver,
	seedManager seed.Manager,
	deriver keys.Deriver,
	signerService signer.Service,
	metricsService *metrics.Service,
	clock time2.Clock,
) *confirm.Gate {
	return confirm.NewGate(approver, seedManager, deriver, signerService,
		confirm.WithObserver(metricsService),
		confirm.WithClock(clock),
	)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
