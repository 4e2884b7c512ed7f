package sendwithus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func fastRetryOptions() []Option {
	return []Option{
		WithRetryBackoff(time.Millisecond, 5*time.Millisecond, 2),
		WithJitter(false),
		WithoutTracing(),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := append([]Option{WithAPIKey("test-key"), WithBaseURL(server.URL)}, fastRetryOptions()...)
	client, err := New(DefaultConfig(), append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		opts    []Option
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults without API key",
			config: DefaultConfig(),
		},
		{
			name:   "defaults with options",
			config: DefaultConfig(),
			opts:   []Option{WithAPIKey("key"), WithTimeout(time.Second), WithRetryCount(1)},
		},
		{
			name:    "zero timeout",
			config:  DefaultConfig(),
			opts:    []Option{WithTimeout(0)},
			wantErr: true,
			errMsg:  "timeout must be greater than 0",
		},
		{
			name:    "negative retry count",
			config:  DefaultConfig(),
			opts:    []Option{WithRetryCount(-1)},
			wantErr: true,
			errMsg:  "retry count must not be negative",
		},
		{
			name:    "empty config",
			config:  Config{},
			wantErr: true,
			errMsg:  "protocol is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigurationError(err))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClientSettersAndGetters(t *testing.T) {
	client, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, client.APIKey())
	assert.Equal(t, DefaultTimeout, client.Timeout())
	assert.Equal(t, DefaultRetryCount, client.RetryCount())

	client.SetAPIKey("new-key")
	client.SetTimeout(3 * time.Second)
	client.SetRetryCount(0)

	assert.Equal(t, "new-key", client.APIKey())
	assert.Equal(t, 3*time.Second, client.Timeout())
	assert.Equal(t, 0, client.RetryCount())

	cfg := client.Config()
	assert.Equal(t, "new-key", cfg.APIKey)

	// The returned config is a copy
	cfg.APIKey = "changed"
	assert.Equal(t, "new-key", client.APIKey())
}

func TestClientSendsHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get(HeaderAPIKey))
		assert.Equal(t, "golang-"+Version, r.Header.Get(HeaderAPIClient))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), ClientName+"/"+Version)

		if r.Method == http.MethodGet {
			assert.Empty(t, r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`[]`))
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"success":true,"status":"OK"}`))
	})

	_, err := client.ListTemplates(context.Background())
	require.NoError(t, err)

	_, err = client.CreateOrUpdateCustomer(context.Background(), &Customer{Email: "user@example.com"})
	require.NoError(t, err)
}

func TestClientMissingAPIKeyMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	spy := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected request")
	})}

	client, err := New(DefaultConfig(), WithHTTPClient(spy), WithoutTracing())
	require.NoError(t, err)

	_, err = client.GetTemplate(context.Background(), "tem_123", "fr-FR")
	require.Error(t, err)

	assert.True(t, IsConfigurationError(err))
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindConfiguration, apiErr.Kind)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, int32(0), calls.Load())

	// Same after clearing a key that was set
	client.SetAPIKey("key")
	client.SetAPIKey("")
	err = client.Ping(context.Background())
	assert.True(t, IsConfigurationError(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestClientInvalidTimeoutMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	client.SetTimeout(0)

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestClientTransportFailureRetries(t *testing.T) {
	tests := []struct {
		name       string
		retryCount int
	}{
		{name: "no retries", retryCount: 0},
		{name: "one retry", retryCount: 1},
		{name: "three retries", retryCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			spy := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				calls.Add(1)
				return nil, errors.New("connection refused")
			})}

			opts := append([]Option{WithAPIKey("key"), WithHTTPClient(spy), WithRetryCount(tt.retryCount)}, fastRetryOptions()...)
			client, err := New(DefaultConfig(), opts...)
			require.NoError(t, err)

			_, err = client.ListTemplates(context.Background())
			require.Error(t, err)

			assert.True(t, IsTransportError(err))
			assert.Equal(t, 0, StatusCode(err))
			assert.Equal(t, int32(tt.retryCount+1), calls.Load())

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.retryCount+1, apiErr.Attempts)
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.Equal(t, "templates", apiErr.Path)
		})
	}
}

func TestClientClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"template not found"}`))
	}, WithRetryCount(3))

	_, err := client.Send(context.Background(), &Email{
		Template:  "tem_missing",
		Recipient: EmailRecipient{Address: "user@example.com"},
	})
	require.Error(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, IsClientError(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "template not found", apiErr.Message)
	assert.Contains(t, apiErr.Body, "template not found")
}

func TestClientServerErrorThenSuccess(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"tem_1","name":"Welcome","locale":"fr-FR"}]`))
	}, WithRetryCount(3))

	templates, err := client.ListTemplates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, templates, 1)
	assert.Equal(t, "tem_1", templates[0].ID)
	assert.Equal(t, "fr-FR", templates[0].Locale)
}

func TestClientServerErrorExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream unavailable"))
	}, WithRetryCount(2))

	_, err := client.GetLog(context.Background(), "log_1")
	require.Error(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, IsServerError(err))
	assert.True(t, IsRetryable(err))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 3, apiErr.Attempts)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestClientUnexpectedStatusIsNotAClientError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// A redirect without Location is handed back to the caller as is.
		w.WriteHeader(http.StatusFound)
	}, WithRetryCount(1))

	_, err := client.ListTemplates(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, IsClientError(err))
	assert.True(t, IsServerError(err))
	assert.Equal(t, http.StatusFound, StatusCode(err))
}

func TestClientAttemptTimeout(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(20*time.Millisecond), WithRetryCount(1))

	err := client.Ping(context.Background())
	require.Error(t, err)

	assert.True(t, IsTransportError(err))
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, WithRetryCount(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Ping(ctx)
	require.Error(t, err)

	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, context.Canceled)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 1, apiErr.Attempts)
}

func TestClientDecodeErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}, WithRetryCount(3))

	_, err := client.GetTemplate(context.Background(), "tem_1", "")
	require.Error(t, err)

	assert.True(t, IsDecodeError(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientConcurrentCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"` + r.URL.Path[len("/api/v1/logs/"):] + `"}`))
	})

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			id := "log_" + string(rune('a'+i))
			log, err := client.GetLog(context.Background(), id)
			if err == nil && log.ID != id {
				err = errors.New("mismatched response " + log.ID)
			}
			errs <- err
		}(i)
	}

	for i := 0; i < n; i++ {
		assert.NoError(t, <-errs)
	}
}
