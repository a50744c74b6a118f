package signer

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

// signCompact produces a deterministic (RFC 6979) low-S signature and drops
// the trailing recovery id
func signCompact(km *keys.KeyMaterial, digest []byte) (Signature, error) {
	if len(digest) != tx.HashSize {
		return Signature{}, errors.Wrapf(ErrSigning, "digest must be %d bytes, got %d", tx.HashSize, len(digest))
	}

	ecdsaPrivateKey, err := km.ECDSA()
	if err != nil {
		return Signature{}, errors.Wrap(ErrSigning, err.Error())
	}
	// Clear private key after use
	defer ecdsaPrivateKey.D.SetInt64(0)

	sigWithRecovery, err := crypto.Sign(digest, ecdsaPrivateKey)
	if err != nil {
		return Signature{}, errors.Wrap(ErrSigning, err.Error())
	}
	if len(sigWithRecovery) != crypto.SignatureLength {
		return Signature{}, errors.Wrapf(ErrSigning, "unexpected signature length %d", len(sigWithRecovery))
	}

	var sig Signature
	copy(sig[:], sigWithRecovery[:SignatureSize])

	return sig, nil
}

// Verify reports whether sig is a valid signature of digest by the
// compressed or uncompressed public key
func Verify(publicKey []byte, digest []byte, sig Signature) bool {
	if len(digest) != tx.HashSize {
		return false
	}

	return crypto.VerifySignature(publicKey, digest, sig[:])
}
