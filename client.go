package sendwithus

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/lattiq/sendwithus/internal/core"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/lattiq/sendwithus"

// Type aliases to re-export core types for the public API.
// This allows users to access types like sendwithus.Template instead of core.Template.
type (
	Error              = core.Error
	ErrorKind          = core.ErrorKind
	ValidationError    = core.ValidationError
	ProviderError      = core.ProviderError
	CredentialVerifier = core.CredentialVerifier
	EspCredentials     = core.EspCredentials

	APIStatus                      = core.APIStatus
	Template                       = core.Template
	TemplateVersion                = core.TemplateVersion
	Email                          = core.Email
	EmailRecipient                 = core.EmailRecipient
	EmailSender                    = core.EmailSender
	EmailFile                      = core.EmailFile
	EmailSummary                   = core.EmailSummary
	EmailResponse                  = core.EmailResponse
	Customer                       = core.Customer
	CustomerResponse               = core.CustomerResponse
	CustomerEmailLogsResponse      = core.CustomerEmailLogsResponse
	CustomerGroup                  = core.CustomerGroup
	CustomerGroupUpdate            = core.CustomerGroupUpdate
	CustomerGroupResponse          = core.CustomerGroupResponse
	CustomerGroupsResponse         = core.CustomerGroupsResponse
	Log                            = core.Log
	LogEvent                       = core.LogEvent
	LogResendResponse              = core.LogResendResponse
	EspAccount                     = core.EspAccount
	EspAccountRequest              = core.EspAccountRequest
	EspAccountResponse             = core.EspAccountResponse
	DripStep                       = core.DripStep
	DripCampaign                   = core.DripCampaign
	DripCampaignActivation         = core.DripCampaignActivation
	DripCampaignResponse           = core.DripCampaignResponse
	DripCampaignDeactivateResponse = core.DripCampaignDeactivateResponse
	RenderRequest                  = core.RenderRequest
	RenderedTemplate               = core.RenderedTemplate
	RenderResponse                 = core.RenderResponse
)

// DefaultLocale is the locale a Template takes when the response omits one.
const DefaultLocale = core.DefaultLocale

// NewEmailFile reads r and returns an attachment with base64 encoded content.
var NewEmailFile = core.NewEmailFile

// Client is a sendwithus API client. All methods are safe for concurrent use.
//
// Each call reads a snapshot of the configuration when it starts. Changing the
// configuration with SetAPIKey, SetTimeout or SetRetryCount while calls are in
// flight is the caller's responsibility: those calls may observe either value.
type Client struct {
	mu           sync.RWMutex
	config       Config
	info         *VersionInfo
	httpClient   *http.Client
	retryManager *RetryManager
	tracer       trace.Tracer
	logger       zerolog.Logger
}

// New creates a new client with the given configuration.
// The API key may be empty here; requests fail with a configuration error until it is set.
func New(config Config, opts ...Option) (*Client, error) {
	// Apply functional options
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		config:       config,
		info:         GetVersionInfo(),
		httpClient:   config.HTTPClient,
		retryManager: NewRetryManager(config.Retry),
		logger:       config.Monitoring.Logger,
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}

	switch {
	case !config.Monitoring.TracingEnabled:
		client.tracer = noop.NewTracerProvider().Tracer(tracerName)
	case config.Monitoring.TracerProvider != nil:
		client.tracer = config.Monitoring.TracerProvider.Tracer(tracerName)
	default:
		client.tracer = otel.Tracer(tracerName)
	}

	return client, nil
}

// SetAPIKey replaces the API key used by subsequent calls. It is not validated here.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.APIKey = apiKey
}

// SetTimeout replaces the per-attempt timeout used by subsequent calls.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Timeout = timeout
}

// SetRetryCount replaces the number of retries used by subsequent calls.
func (c *Client) SetRetryCount(retries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.RetryCount = retries
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.APIKey
}

// Timeout returns the configured per-attempt timeout.
func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Timeout
}

// RetryCount returns the configured number of retries.
func (c *Client) RetryCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.RetryCount
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	return c.snapshot()
}

func (c *Client) snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Ping checks that the API is reachable and the API key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	rd := newRequest("Ping", http.MethodGet, "templates")
	return c.do(ctx, rd, nil)
}

// do runs one API call: build, execute with retries, decode into out.
func (c *Client) do(ctx context.Context, rd *requestDescriptor, out any) error {
	ctx, span := c.tracer.Start(ctx, "sendwithus.Client."+rd.op)
	defer span.End()

	span.SetAttributes(
		attribute.String("sendwithus.method", rd.method),
		attribute.String("sendwithus.path", rd.path),
	)

	cfg := c.snapshot()

	// Configuration errors never reach the network
	pr, err := prepare(&cfg, c.info, rd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		return err
	}

	var body []byte
	attempts, err := c.retryManager.Retry(ctx, cfg.RetryCount, func(attempt int) error {
		respBody, attemptErr := roundTrip(ctx, c.httpClient, cfg.Timeout, pr)
		if attemptErr != nil {
			c.logger.Debug().
				Err(attemptErr).
				Str("op", rd.op).
				Str("method", rd.method).
				Str("path", rd.path).
				Int("attempt", attempt).
				Msg("sendwithus request attempt failed")
			return attemptErr
		}
		body = respBody
		return nil
	})

	span.SetAttributes(attribute.Int("sendwithus.attempts", attempts))

	if err != nil {
		apiErr := finalizeError(err, rd, attempts)
		if apiErr.StatusCode != 0 {
			span.SetAttributes(attribute.Int("sendwithus.status_code", apiErr.StatusCode))
		}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Kind.String()+" error")
		return apiErr
	}

	if err := decodeResponse(body, out); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			apiErr.Method = rd.method
			apiErr.Path = rd.path
			apiErr.Attempts = attempts
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// finalizeError unwraps the retry loop result into an *Error annotated with the request.
func finalizeError(err error, rd *requestDescriptor, attempts int) *Error {
	var perm *permanentError
	if errors.As(err, &perm) {
		err = perm.err
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		// The context ended while waiting between attempts
		apiErr = &Error{
			Kind:    KindTransport,
			Message: "request cancelled: " + err.Error(),
			Cause:   err,
		}
	}

	apiErr.Method = rd.method
	apiErr.Path = rd.path
	apiErr.Attempts = attempts
	return apiErr
}
