package seed

import (
	"context"

	"github/chapool/go-txsigner/internal/wallet/keys"
)

// Manager keeps the signing secret in memory and hands out copies of it
type Manager interface {
	// Initialize stores a BIP-39 mnemonic (called at startup)
	Initialize(mnemonic string, passphrase string, coinType uint32) error

	// InitializePrivateKey stores a raw 32-byte private key instead of a mnemonic
	InitializePrivateKey(privateKey []byte) error

	// Entropy returns a copy of the stored secret; the caller wipes it after use
	Entropy(ctx context.Context) (keys.Entropy, error)

	// IsInitialized checks if a secret is stored
	IsInitialized() bool

	// Clear clears the secret from memory
	Clear()
}
