package sendwithus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorMessageLen caps server messages taken verbatim from non-JSON bodies.
const maxErrorMessageLen = 512

// permanentError stops the retry loop while keeping the wrapped error intact.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string   { return e.err.Error() }
func (e *permanentError) Unwrap() error   { return e.err }
func (e *permanentError) Retryable() bool { return false }

// roundTrip performs a single attempt bounded by timeout and classifies the outcome.
// It returns the response body on 2xx and an *Error otherwise.
func roundTrip(ctx context.Context, httpClient *http.Client, timeout time.Duration, pr *preparedRequest) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := pr.newHTTPRequest(attemptCtx)
	if err != nil {
		cfgErr := NewConfigurationError(err.Error())
		cfgErr.Cause = err
		return nil, &permanentError{err: cfgErr}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, timeout, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, statusError(resp, body)
}

// transportError classifies a failure that produced no HTTP status.
// A cancelled caller context is not retried.
func transportError(ctx context.Context, timeout time.Duration, err error) error {
	apiErr := &Error{
		Kind:    KindTransport,
		Message: "request failed: " + err.Error(),
		Cause:   err,
	}

	if ctx.Err() != nil {
		apiErr.Message = "request cancelled: " + ctx.Err().Error()
		apiErr.Cause = ctx.Err()
		return &permanentError{err: apiErr}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		apiErr.Message = fmt.Sprintf("request timed out after %s", timeout)
	}

	return apiErr
}

// statusError converts a non-2xx response into a client or server error.
// Only 4xx is the caller's fault; 1xx, 3xx and 5xx count as server failures.
func statusError(resp *http.Response, body []byte) *Error {
	apiErr := &Error{
		Kind:       KindServer,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.StatusCode, body),
		Body:       string(body),
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		apiErr.Kind = KindClient
	case resp.StatusCode >= 500:
		apiErr.RetryAfterDuration = parseRetryAfter(resp.Header.Get("Retry-After"))
	default:
		apiErr.Message = "unexpected status: " + apiErr.Message
	}

	return apiErr
}

// errorMessage extracts a human readable message from an error body.
func errorMessage(statusCode int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			return envelope.Message
		case envelope.Error != "":
			return envelope.Error
		case envelope.Status != "":
			return envelope.Status
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(statusCode)
	}
	if len(text) > maxErrorMessageLen {
		text = text[:maxErrorMessageLen]
	}
	return text
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
