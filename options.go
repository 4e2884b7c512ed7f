package sendwithus

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(apiKey string) Option {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithAPIVersion sets the API version path segment.
func WithAPIVersion(version string) Option {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithEndpoint sets protocol, host and port at once.
func WithEndpoint(protocol, host, port string) Option {
	return func(c *Config) {
		c.Protocol = protocol
		c.Host = host
		c.Port = port
	}
}

// WithBaseURL points the client at a different server, e.g. an httptest server.
// A URL without an http(s) scheme and a host clears the endpoint, so New fails
// instead of sending the key to the default host.
func WithBaseURL(rawURL string) Option {
	return func(c *Config) {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			c.Protocol, c.Host, c.Port = "", "", ""
			c.invalidBaseURL = rawURL
			return
		}
		c.invalidBaseURL = ""
		c.Protocol = u.Scheme
		c.Host = u.Hostname()
		c.Port = u.Port()
		if c.Port == "" {
			switch u.Scheme {
			case "http":
				c.Port = "80"
			default:
				c.Port = DefaultPort
			}
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithRetryCount sets the number of additional attempts after a transient failure.
func WithRetryCount(retries int) Option {
	return func(c *Config) {
		c.RetryCount = retries
	}
}

// WithRetryBackoff configures the delay between attempts.
func WithRetryBackoff(initialDelay, maxDelay time.Duration, multiplier float64) Option {
	return func(c *Config) {
		c.Retry.InitialDelay = initialDelay
		c.Retry.MaxDelay = maxDelay
		c.Retry.Multiplier = multiplier
	}
}

// WithJitter enables or disables jitter in retry delays.
func WithJitter(enabled bool) Option {
	return func(c *Config) {
		c.Retry.Jitter = enabled
	}
}

// WithoutRetry disables retries; every call makes exactly one attempt.
func WithoutRetry() Option {
	return func(c *Config) {
		c.RetryCount = 0
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = httpClient
	}
}

// WithEspVerification makes AddEspAccount verify credentials with the ESP first.
func WithEspVerification(enabled bool) Option {
	return func(c *Config) {
		c.Esp.VerifyCredentials = enabled
	}
}

// WithLogger sets the logger used for retry and failure events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Monitoring.Logger = logger
	}
}

// WithTracerProvider sets the tracer provider used for per-call spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.Monitoring.TracingEnabled = true
		c.Monitoring.TracerProvider = tp
	}
}

// WithoutTracing disables per-call spans.
func WithoutTracing() Option {
	return func(c *Config) {
		c.Monitoring.TracingEnabled = false
	}
}
