package rpc

import (
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

// signerError maps errors of the sign pipeline to HTTP errors. Errors it
// doesn't know are returned unchanged and end up as 500.
func signerError(err error) error {
	var httpError *httperrors.HTTPError

	switch {
	case err == nil:
		return nil
	case errors.Is(err, confirm.ErrUserRejected):
		httpError = httperrors.NewHTTPError(http.StatusForbidden, types.PublicHTTPErrorTypeUserRejected, "The sign request was rejected.")
	case errors.Is(err, keys.ErrInvalidMnemonic):
		httpError = httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidMnemonic, "Invalid mnemonic.")
	case errors.Is(err, keys.ErrInvalidKey):
		httpError = httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidKey, "Invalid private key.")
	case errors.Is(err, tx.ErrEncoding):
		httpError = httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeEncoding, "The transaction can't be encoded.", err.Error())
	case errors.Is(err, confirm.ErrEntropyUnavailable):
		httpError = httperrors.NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeEntropyUnavailable, "No signing key is available.")
	case errors.Is(err, signer.ErrSigning):
		httpError = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeSigning, "Failed to sign the transaction.")
	default:
		return err
	}

	httpError.Internal = err
	return httpError
}
