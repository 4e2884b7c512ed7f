package sendwithus

import (
	"errors"

	"github.com/lattiq/sendwithus/internal/core"
	"github.com/lattiq/sendwithus/internal/providers"
)

// Predefined sentinel errors. An *Error matches the sentinel of its kind with errors.Is.
var (
	// ErrConfiguration indicates the request was never sent (missing API key, invalid timeout).
	ErrConfiguration = core.ErrConfiguration

	// ErrClient indicates the server rejected the request with a 4xx status.
	ErrClient = core.ErrClient

	// ErrServer indicates the server answered 5xx on every attempt.
	ErrServer = core.ErrServer

	// ErrTransport indicates the server could not be reached (timeout, connection failure).
	ErrTransport = core.ErrTransport

	// ErrDecode indicates a 2xx response body that did not match the expected shape.
	ErrDecode = core.ErrDecode

	// ErrUnsupportedEspType indicates there is no credential verifier for an ESP type.
	ErrUnsupportedEspType = providers.ErrUnsupportedEspType
)

// Provider error codes carried by *ProviderError.
const (
	ProviderCodeConfig      = core.ProviderCodeConfig
	ProviderCodeRejected    = core.ProviderCodeRejected
	ProviderCodeUnreachable = core.ProviderCodeUnreachable
)

// Error kinds.
const (
	KindConfiguration = core.KindConfiguration
	KindClient        = core.KindClient
	KindServer        = core.KindServer
	KindTransport     = core.KindTransport
	KindDecode        = core.KindDecode
)

// Error constructor and classification functions
var (
	NewConfigurationError       = core.NewConfigurationError
	NewValidationError          = core.NewValidationError
	NewValidationErrorWithValue = core.NewValidationErrorWithValue
	NewProviderError            = core.NewProviderError
	IsRetryable                 = core.IsRetryable
	IsTemporary                 = core.IsTemporary
	GetRetryAfter               = core.GetRetryAfter
)

// IsConfigurationError reports whether err means the request was never sent.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsClientError reports whether err means the server rejected the input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrClient)
}

// IsServerError reports whether err means the server kept failing.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsTransportError reports whether err means the server was never reached.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecodeError reports whether err means the response could not be decoded.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
