package httperrors

import (
	"net/http"

	"github/chapool/go-txsigner/internal/types"
)

var (
	ErrBadRequestInvalidJSON       = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid JSON body.")
	ErrBadRequestUnknownMethod     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUnknownMethod, "unknown method")
	ErrNotFoundApproval            = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Approval request not found.")
	ErrServiceUnavailableApprovals = NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeGeneric, "Approvals are not resolved over HTTP.")
)
