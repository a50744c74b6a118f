package signer

import (
	"context"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

type service struct{}

// NewService creates a new signer Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// SignTransaction signs the SHA-256 digest of the canonical sign document
func (s *service) SignTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (Signature, error) {
	digest, err := tx.SignDigest(msgs, sender, chainID, sequence)
	if err != nil {
		return Signature{}, err
	}

	util.LogFromContext(ctx).Debug().
		Str("digest", digest.String()).
		Str("chain_id", chainID).
		Uint32("sequence", sequence).
		Msg("Signing transaction digest")

	return s.SignDigest(ctx, km, digest[:])
}

// BuildSignedTransaction signs the transaction and returns it with its credential
func (s *service) BuildSignedTransaction(ctx context.Context, km *keys.KeyMaterial, msgs tx.Messages, sender tx.Addr, chainID string, sequence uint32) (*tx.SignedTransaction, error) {
	sig, err := s.SignTransaction(ctx, km, msgs, sender, chainID, sequence)
	if err != nil {
		return nil, err
	}

	return &tx.SignedTransaction{
		Sender:     sender,
		Msgs:       msgs,
		Credential: strfmt.Base64(sig.Bytes()),
	}, nil
}

// SignDigest signs a 32-byte digest with the key
func (s *service) SignDigest(_ context.Context, km *keys.KeyMaterial, digest []byte) (Signature, error) {
	if km == nil {
		return Signature{}, errors.Wrap(ErrSigning, "no key material")
	}

	return signCompact(km, digest)
}
