package sendgrid

import (
	"context"
	"net/http"

	"github.com/sendgrid/sendgrid-go"

	"github.com/lattiq/sendwithus/internal/core"
)

// DefaultHost is the SendGrid API host.
const DefaultHost = "https://api.sendgrid.com"

// Verifier checks a SendGrid API key by listing its scopes.
type Verifier struct {
	apiKey string
	host   string
}

// NewVerifier creates a SendGrid verifier from "api_key" and an optional "host".
func NewVerifier(creds core.EspCredentials) (*Verifier, error) {
	apiKey := creds.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "SendGrid API key is required")
	}

	host := creds.Get("host")
	if host == "" {
		host = DefaultHost
	}

	return &Verifier{
		apiKey: apiKey,
		host:   host,
	}, nil
}

// Verify calls GET /v3/scopes with the key.
func (v *Verifier) Verify(ctx context.Context) error {
	request := sendgrid.GetRequest(v.apiKey, "/v3/scopes", v.host)
	request.Method = http.MethodGet

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "failed to reach SendGrid: "+err.Error(), err)
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		providerErr := core.NewProviderError(v.Name(), core.ProviderCodeRejected, "SendGrid rejected the API key", nil)
		providerErr.StatusCode = response.StatusCode
		return providerErr
	case response.StatusCode >= 400:
		providerErr := core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "SendGrid API error: "+response.Body, nil)
		providerErr.StatusCode = response.StatusCode
		return providerErr
	}

	return nil
}

// Name returns the ESP type.
func (v *Verifier) Name() string {
	return "sendgrid"
}
