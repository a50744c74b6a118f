package seed

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/keys"
)

// manager implements secret management with thread-safe access
type manager struct {
	mu          sync.RWMutex
	mnemonic    []byte
	passphrase  []byte
	privateKey  []byte
	coinType    uint32
	initialized bool
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		initialized: false,
	}
}

// Initialize validates and stores the mnemonic. Nothing is derived yet; keys
// are derived per request and never cached.
func (m *manager) Initialize(mnemonic string, passphrase string, coinType uint32) error {
	normalized := keys.NormalizeMnemonic(mnemonic)
	if err := keys.ValidateMnemonic(normalized); err != nil {
		return err
	}
	if _, err := keys.NewHDPath(coinType); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
	m.mnemonic = []byte(normalized)
	m.passphrase = []byte(passphrase)
	m.coinType = coinType
	m.initialized = true

	return nil
}

// InitializePrivateKey validates and stores a raw private key
func (m *manager) InitializePrivateKey(privateKey []byte) error {
	km, err := keys.FromPrivateKey(privateKey)
	if err != nil {
		return err
	}
	km.Zero()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
	m.privateKey = make([]byte, len(privateKey))
	copy(m.privateKey, privateKey)
	m.initialized = true

	return nil
}

// Entropy returns a copy of the secret to prevent external modification
func (m *manager) Entropy(ctx context.Context) (keys.Entropy, error) {
	if err := ctx.Err(); err != nil {
		return keys.Entropy{}, errors.Wrap(keys.ErrEntropyUnavailable, err.Error())
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return keys.Entropy{}, errors.Wrap(keys.ErrEntropyUnavailable, "seed not initialized")
	}

	if m.privateKey != nil {
		privateKeyCopy := make([]byte, len(m.privateKey))
		copy(privateKeyCopy, m.privateKey)
		return keys.Entropy{PrivateKey: privateKeyCopy}, nil
	}

	return keys.Entropy{
		Mnemonic:   string(m.mnemonic),
		Passphrase: string(m.passphrase),
		CoinType:   m.coinType,
	}, nil
}

// IsInitialized checks if a secret is stored
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the secret from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
}

func (m *manager) clearLocked() {
	for _, secret := range [][]byte{m.mnemonic, m.passphrase, m.privateKey} {
		for i := range secret {
			secret[i] = 0
		}
	}

	m.mnemonic = nil
	m.passphrase = nil
	m.privateKey = nil
	m.coinType = 0
	m.initialized = false
}
