package sendwithus

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// API connection defaults.
const (
	DefaultAPIVersion = "v1"
	DefaultProtocol   = "https"
	DefaultHost       = "api.sendwithus.com"
	DefaultPort       = "443"
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 3
)

// Config holds the complete client configuration.
type Config struct {
	// APIKey authenticates every request. It may be left empty at construction
	// time and set later with Client.SetAPIKey; calls fail until it is set.
	APIKey string

	// APIVersion is the path segment after /api/ (default: "v1").
	APIVersion string

	// Protocol, Host and Port form the base URL.
	Protocol string
	Host     string
	Port     string

	// Timeout bounds each HTTP attempt independently; it is not cumulative across retries.
	Timeout time.Duration

	// RetryCount is the number of additional attempts after a transient failure.
	// A RetryCount of 3 allows up to 4 attempts in total.
	RetryCount int

	// Retry contains the backoff policy applied between attempts.
	Retry RetryConfig

	// Esp contains ESP account settings.
	Esp EspConfig

	// HTTPClient overrides the HTTP client used for every attempt (optional).
	// Its Timeout is ignored in favour of Timeout above.
	HTTPClient *http.Client

	// Monitoring contains observability configuration.
	Monitoring MonitoringConfig

	// invalidBaseURL holds the value WithBaseURL could not use.
	invalidBaseURL string
}

// RetryConfig contains the backoff policy between attempts.
type RetryConfig struct {
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier (must be >= 1.0; 1.0 gives a fixed delay).
	Multiplier float64

	// Jitter indicates whether random jitter should be added to delays.
	Jitter bool
}

// EspConfig contains settings for ESP account registration.
type EspConfig struct {
	// VerifyCredentials makes AddEspAccount check the credentials against the
	// ESP itself before registering them with sendwithus.
	VerifyCredentials bool
}

// MonitoringConfig contains observability configuration.
type MonitoringConfig struct {
	// Logger receives debug events for retries and failures. Defaults to zerolog.Nop().
	Logger zerolog.Logger

	// TracerProvider creates the tracer for per-call spans. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// TracingEnabled toggles per-call spans.
	TracingEnabled bool
}

// DefaultConfig returns a configuration with sensible defaults and no API key.
func DefaultConfig() Config {
	return Config{
		APIVersion: DefaultAPIVersion,
		Protocol:   DefaultProtocol,
		Host:       DefaultHost,
		Port:       DefaultPort,
		Timeout:    DefaultTimeout,
		RetryCount: DefaultRetryCount,
		Retry:      DefaultRetryConfig(),
		Monitoring: MonitoringConfig{
			Logger:         zerolog.Nop(),
			TracingEnabled: true,
		},
	}
}

// DefaultRetryConfig returns default backoff configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Validate checks everything a request needs except the API key.
func (c *Config) Validate() error {
	if c.invalidBaseURL != "" {
		return NewConfigurationError(fmt.Sprintf("invalid base URL %q: want http(s)://host[:port]", c.invalidBaseURL))
	}

	if c.Protocol == "" {
		return NewConfigurationError("protocol is required")
	}

	if c.Host == "" {
		return NewConfigurationError("host is required")
	}

	if c.APIVersion == "" {
		return NewConfigurationError("api version is required")
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout must be greater than 0")
	}

	if c.RetryCount < 0 {
		return NewConfigurationError("retry count must not be negative")
	}

	if c.Retry.InitialDelay < 0 || c.Retry.MaxDelay < 0 {
		return NewConfigurationError("retry delays must not be negative")
	}

	if c.Retry.Multiplier < 1.0 {
		return NewConfigurationError("retry multiplier must be at least 1.0")
	}

	return nil
}

// validateForRequest is Validate plus the API key check done before every call.
func (c *Config) validateForRequest() error {
	if c.APIKey == "" {
		return NewConfigurationError("API key is not set")
	}
	return c.Validate()
}

// baseURL returns {protocol}://{host}:{port}/api/{version}/.
func (c *Config) baseURL() string {
	host := c.Host
	if c.Port != "" {
		host += ":" + c.Port
	}
	return c.Protocol + "://" + host + "/api/" + c.APIVersion + "/"
}
