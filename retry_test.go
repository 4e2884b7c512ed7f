package sendwithus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryManager() *RetryManager {
	return NewRetryManager(RetryConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	})
}

func TestRetryManagerRetry(t *testing.T) {
	transient := &Error{Kind: KindServer, StatusCode: 500}
	permanent := &Error{Kind: KindClient, StatusCode: 404}

	tests := []struct {
		name         string
		retries      int
		failures     int
		err          error
		wantAttempts int
		wantErr      error
	}{
		{
			name:         "success on first attempt",
			retries:      3,
			wantAttempts: 1,
		},
		{
			name:         "success after transient failures",
			retries:      3,
			failures:     2,
			err:          transient,
			wantAttempts: 3,
		},
		{
			name:         "transient failures exhaust retries",
			retries:      3,
			failures:     10,
			err:          transient,
			wantAttempts: 4,
			wantErr:      ErrServer,
		},
		{
			name:         "zero retries",
			retries:      0,
			failures:     10,
			err:          transient,
			wantAttempts: 1,
			wantErr:      ErrServer,
		},
		{
			name:         "permanent failure is not retried",
			retries:      3,
			failures:     10,
			err:          permanent,
			wantAttempts: 1,
			wantErr:      ErrClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			attempts, err := testRetryManager().Retry(context.Background(), tt.retries, func(attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Equal(t, tt.wantAttempts, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryManagerStopsOnCancel(t *testing.T) {
	manager := NewRetryManager(RetryConfig{
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	attempts, err := manager.Retry(ctx, 5, func(int) error {
		calls++
		cancel()
		return &Error{Kind: KindTransport}
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryManagerHonoursRetryAfter(t *testing.T) {
	manager := NewRetryManager(RetryConfig{
		InitialDelay: time.Hour,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   1,
	})

	start := time.Now()
	calls := 0
	_, err := manager.Retry(context.Background(), 1, func(int) error {
		calls++
		if calls == 1 {
			return &Error{Kind: KindServer, StatusCode: 503, RetryAfterDuration: time.Minute}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	// Retry-After is capped by MaxDelay
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryManagerCalculateDelay(t *testing.T) {
	manager := NewRetryManager(RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   2,
	})

	assert.Equal(t, 100*time.Millisecond, manager.calculateDelay(1))
	assert.Equal(t, 200*time.Millisecond, manager.calculateDelay(2))
	assert.Equal(t, 300*time.Millisecond, manager.calculateDelay(3))
	assert.Equal(t, 300*time.Millisecond, manager.calculateDelay(10))

	manager.config.Jitter = true
	for i := 0; i < 20; i++ {
		delay := manager.calculateDelay(1)
		assert.GreaterOrEqual(t, delay, 100*time.Millisecond)
		assert.Less(t, delay, 110*time.Millisecond)
	}
}
