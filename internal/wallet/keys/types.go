package keys

import "github.com/pkg/errors"

const (
	// PrivateKeySize is the length of a raw secp256k1 scalar
	PrivateKeySize = 32
	// PublicKeySize is the length of a compressed SEC1 public key
	PublicKeySize = 33

	// DefaultCoinType is the BIP-44 coin type of Ethereum, also used for CosmWasm-style chains
	DefaultCoinType uint32 = 60
)

var (
	// ErrInvalidMnemonic is returned for phrases failing the BIP-39 word list or checksum rules
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidKey is returned when bytes are not a valid secp256k1 scalar (zero or >= curve order)
	ErrInvalidKey = errors.New("invalid private key")
	// ErrInvalidPath is returned for derivation paths not following m/44'/coinType'/0'/0/0
	ErrInvalidPath = errors.New("invalid derivation path")
	// ErrEntropyUnavailable is returned when no key source material could be obtained
	ErrEntropyUnavailable = errors.New("entropy unavailable")
)

// Deriver turns key source material into KeyMaterial
type Deriver interface {
	// Derive builds KeyMaterial from either a raw private key or a mnemonic.
	// The caller owns the returned key and must Zero it after use.
	Derive(entropy Entropy) (*KeyMaterial, error)
}

// Entropy is the material handed out by a key source. Exactly one of
// PrivateKey and Mnemonic is set.
type Entropy struct {
	PrivateKey []byte
	Mnemonic   string
	Passphrase string
	CoinType   uint32
}

// Wipe zeroes the raw private key bytes, if any
func (e *Entropy) Wipe() {
	wipe(e.PrivateKey)
	e.PrivateKey = nil
	e.Mnemonic = ""
	e.Passphrase = ""
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
