package keys

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// KeyMaterial is a secp256k1 key pair. The public key is always computed from
// the private key and can't be set on its own.
type KeyMaterial struct {
	privateKey [PrivateKeySize]byte
	publicKey  [PublicKeySize]byte
}

// FromPrivateKey creates KeyMaterial from a raw 32-byte scalar
func FromPrivateKey(privateKey []byte) (*KeyMaterial, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKey, "expected %d bytes, got %d", PrivateKeySize, len(privateKey))
	}

	// ToECDSA rejects zero and scalars >= the curve order
	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	defer ecdsaPrivateKey.D.SetInt64(0)

	km := &KeyMaterial{}
	copy(km.privateKey[:], privateKey)
	copy(km.publicKey[:], crypto.CompressPubkey(&ecdsaPrivateKey.PublicKey))

	return km, nil
}

// PrivateKey returns a copy of the raw 32-byte private key.
// WARNING: Caller must clear the returned bytes after use
func (k *KeyMaterial) PrivateKey() []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, k.privateKey[:])
	return out
}

// PublicKey returns the 33-byte compressed public key
func (k *KeyMaterial) PublicKey() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, k.publicKey[:])
	return out
}

// Address returns the EVM-style hex address of the public key
func (k *KeyMaterial) Address() (string, error) {
	publicKey, err := crypto.DecompressPubkey(k.publicKey[:])
	if err != nil {
		return "", errors.Wrap(err, "failed to decompress public key")
	}

	return crypto.PubkeyToAddress(*publicKey).Hex(), nil
}

// ECDSA converts the key to a go-ethereum ECDSA private key.
// WARNING: Caller should reset D after use
func (k *KeyMaterial) ECDSA() (*ecdsa.PrivateKey, error) {
	ecdsaPrivateKey, err := crypto.ToECDSA(k.privateKey[:])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return ecdsaPrivateKey, nil
}

// Zero clears the private key from memory. The KeyMaterial can't be used for signing afterwards.
func (k *KeyMaterial) Zero() {
	wipe(k.privateKey[:])
}
