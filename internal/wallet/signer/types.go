package signer

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

// SignatureSize is the length of a compact r||s signature
const SignatureSize = 64

// ErrSigning is returned when the signature primitive fails or gets malformed input
var ErrSigning = errors.New("signing error")

// Service provides transaction signing functionality
type Service interface {
	// SignDigest signs a 32-byte digest, returning r||s without the recovery byte
	SignDigest(ctx context.Context, km *keys.KeyMaterial, digest []byte) (Signature, error)

	// SignTransaction encodes the sign document, hashes it and signs the digest
	SignTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (Signature, error)

	// BuildSignedTransaction signs the transaction and attaches the signature as base64 credential
	BuildSignedTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (*tx.SignedTransaction, error)
}

// Signature is a compact secp256k1 signature (r||s), base64 encoded as text
type Signature [SignatureSize]byte

// ParseSignature decodes a base64 encoded compact signature
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	if err := sig.UnmarshalText([]byte(s)); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// Bytes returns a copy of the signature bytes
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out, s[:])
	return out
}

func (s Signature) String() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	raw, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid signature encoding")
	}
	if len(raw) != SignatureSize {
		return errors.Errorf("signature must be %d bytes, got %d", SignatureSize, len(raw))
	}
	copy(s[:], raw)
	return nil
}
