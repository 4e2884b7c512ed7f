package sendwithus

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

// RetryManager handles retry logic for transient failures.
type RetryManager struct {
	config RetryConfig
}

// NewRetryManager creates a new retry manager with the given configuration.
func NewRetryManager(config RetryConfig) *RetryManager {
	return &RetryManager{
		config: config,
	}
}

// Retry calls fn once and then up to retries more times while it returns a
// retryable error. It returns the number of attempts made and the last error.
// Cancelling ctx stops the wait between attempts and returns ctx.Err().
func (r *RetryManager) Retry(ctx context.Context, retries int, fn func(attempt int) error) (int, error) {
	maxAttempts := retries + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return attempt, nil
		}

		lastErr = err

		// Don't retry if error is not retryable
		if !IsRetryable(err) {
			return attempt, err
		}

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		delay := r.calculateDelay(attempt)

		// A server supplied Retry-After wins over the computed backoff
		if retryAfter := GetRetryAfter(err); retryAfter > 0 {
			delay = min(retryAfter, r.config.MaxDelay)
		}

		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-time.After(delay):
		}
	}

	return maxAttempts, lastErr
}

// calculateDelay calculates the delay for the given attempt number.
func (r *RetryManager) calculateDelay(attempt int) time.Duration {
	delay := time.Duration(float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, float64(attempt-1)))

	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter {
		// Add up to 10% jitter using cryptographically secure random
		maxJitter := int64(float64(delay) * 0.1)
		if maxJitter > 0 {
			jitterBig, err := rand.Int(rand.Reader, big.NewInt(maxJitter))
			if err == nil {
				delay += time.Duration(jitterBig.Int64())
			}
		}
	}

	return delay
}
