package types

// PublicHTTPErrorType is a machine readable error category
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric            PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeUserRejected       PublicHTTPErrorType = "USER_REJECTED"
	PublicHTTPErrorTypeInvalidMnemonic    PublicHTTPErrorType = "INVALID_MNEMONIC"
	PublicHTTPErrorTypeInvalidKey         PublicHTTPErrorType = "INVALID_KEY"
	PublicHTTPErrorTypeEncoding           PublicHTTPErrorType = "ENCODING"
	PublicHTTPErrorTypeEntropyUnavailable PublicHTTPErrorType = "ENTROPY_UNAVAILABLE"
	PublicHTTPErrorTypeSigning            PublicHTTPErrorType = "SIGNING"
	PublicHTTPErrorTypeUnknownMethod      PublicHTTPErrorType = "UNKNOWN_METHOD"
)

// PublicHTTPError is the error payload returned to clients
type PublicHTTPError struct {
	// HTTP status code returned for the error
	Code *int64 `json:"status" validate:"required"`

	// More detailed, human-readable, optional explanation of the error
	Detail string `json:"detail,omitempty"`

	// Short, human-readable description of the error
	Title *string `json:"title" validate:"required"`

	// Type of error returned, should be used for client-side error handling
	Type *string `json:"type" validate:"required"`
}

// HTTPValidationErrorDetail describes a single invalid field
type HTTPValidationErrorDetail struct {
	Error *string `json:"error" validate:"required"`
	In    *string `json:"in" validate:"required"`
	Key   *string `json:"key" validate:"required"`
}

// PublicHTTPValidationError is a PublicHTTPError listing invalid fields
type PublicHTTPValidationError struct {
	PublicHTTPError

	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors" validate:"required,dive"`
}
