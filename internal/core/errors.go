package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies a failed API call by the corrective action it implies.
type ErrorKind int

const (
	// KindConfiguration means the request was never sent (missing API key, bad timeout).
	KindConfiguration ErrorKind = iota

	// KindClient means the server rejected the input (4xx). Never retried.
	KindClient

	// KindServer means the server kept failing (5xx) after every retry.
	KindServer

	// KindTransport means the server was never reached (timeout, connection failure).
	KindTransport

	// KindDecode means the response body did not match the expected shape.
	KindDecode
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrConfiguration = errors.New("sendwithus: configuration error")
	ErrClient        = errors.New("sendwithus: client error")
	ErrServer        = errors.New("sendwithus: server error")
	ErrTransport     = errors.New("sendwithus: transport error")
	ErrDecode        = errors.New("sendwithus: decode error")
)

// Error is the single failure type returned by every API call.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status of the last attempt, 0 when no response was received.
	StatusCode int

	// Message is the server message when one could be extracted, otherwise a description.
	Message string

	// Body is the raw response body, kept for diagnostics.
	Body string

	// Method and Path identify the request (path is relative to /api/{version}/).
	Method string
	Path   string

	// Attempts is the number of HTTP attempts made, 0 for configuration errors.
	Attempts int

	// RetryAfterDuration is the server's Retry-After hint on a 5xx response.
	RetryAfterDuration time.Duration

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	target := ""
	if e.Method != "" {
		target = fmt.Sprintf(" %s %s", e.Method, e.Path)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("sendwithus %s error%s (status: %d): %s", e.Kind, target, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("sendwithus %s error%s: %s", e.Kind, target, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels and other *Error values of the same kind and status.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrClient:
		return e.Kind == KindClient
	case ErrServer:
		return e.Kind == KindServer
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	}
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind && e.StatusCode == other.StatusCode
}

// Retryable reports whether another attempt could succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindServer || e.Kind == KindTransport
}

// Temporary reports whether the failure is expected to clear on its own.
func (e *Error) Temporary() bool {
	return e.Retryable()
}

// RetryAfter returns the server's Retry-After hint, 0 when none was sent.
func (e *Error) RetryAfter() time.Duration {
	return e.RetryAfterDuration
}

// IsNotFound checks if the server answered 404.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the server rejected the API key.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NewConfigurationError creates an error for a request that could not be built.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// ValidationError represents a local argument error with specific field information.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string

	// Value is the invalid value (optional).
	Value interface{}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error in %s: %s (value: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
// A validation error is also a configuration error: nothing was sent.
func (e *ValidationError) Is(target error) bool {
	if target == ErrConfiguration {
		return true
	}
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewValidationErrorWithValue creates a new validation error with a value.
func NewValidationErrorWithValue(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// Provider error codes.
const (
	ProviderCodeConfig      = "config_error"
	ProviderCodeRejected    = "credentials_rejected"
	ProviderCodeUnreachable = "unreachable"
)

// ProviderError represents a failed ESP credential check.
type ProviderError struct {
	// Provider is the ESP type that generated the error.
	Provider string

	// Code is one of the ProviderCode constants.
	Code string

	// Message is the error message.
	Message string

	// StatusCode is the HTTP status code (for HTTP-based providers).
	StatusCode int

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s error [%s] (status: %d): %s",
			e.Provider, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s error [%s]: %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Provider == pe.Provider && e.Code == pe.Code
}

// Rejected reports whether the ESP refused the credentials.
func (e *ProviderError) Rejected() bool {
	return e.Code == ProviderCodeRejected
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, code, message string, cause error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// RetryableError interface indicates whether an error can be retried.
type RetryableError interface {
	Retryable() bool
}

// TemporaryError interface indicates whether an error is temporary.
type TemporaryError interface {
	Temporary() bool
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var re RetryableError
	if errors.As(err, &re) {
		return re.Retryable()
	}

	return false
}

// IsTemporary checks if an error is temporary.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}

	var te TemporaryError
	if errors.As(err, &te) {
		return te.Temporary()
	}

	return false
}

// GetRetryAfter extracts retry delay from an error if available.
func GetRetryAfter(err error) time.Duration {
	if err == nil {
		return 0
	}

	var rateLimited interface{ RetryAfter() time.Duration }
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter()
	}

	return 0
}
