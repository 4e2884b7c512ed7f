package mailgun

import (
	"context"
	"errors"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/lattiq/sendwithus/internal/core"
)

// Verifier checks that a Mailgun API key owns a sending domain.
type Verifier struct {
	client *mailgun.MailgunImpl
	domain string
}

// NewVerifier creates a Mailgun verifier from "api_key", "domain" and an optional "base_url".
func NewVerifier(creds core.EspCredentials) (*Verifier, error) {
	apiKey := creds.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "Mailgun API key is required")
	}

	domain := creds.Get("domain")
	if domain == "" {
		return nil, core.NewValidationError("domain", "Mailgun domain is required")
	}

	client := mailgun.NewMailgun(domain, apiKey)

	// Set base URL if provided (for EU customers)
	if baseURL := creds.Get("base_url"); baseURL != "" {
		client.SetAPIBase(baseURL)
	}

	return &Verifier{
		client: client,
		domain: domain,
	}, nil
}

// Verify lists the account's domains and looks for the configured one.
func (v *Verifier) Verify(ctx context.Context) error {
	it := v.client.ListDomains(&mailgun.ListOptions{Limit: 100})

	var page []mailgun.Domain
	for it.Next(ctx, &page) {
		for _, d := range page {
			if d.Name == v.domain {
				return nil
			}
		}
	}

	if err := it.Err(); err != nil {
		var unexpected *mailgun.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			code := core.ProviderCodeUnreachable
			if unexpected.Actual == http.StatusUnauthorized || unexpected.Actual == http.StatusForbidden {
				code = core.ProviderCodeRejected
			}
			providerErr := core.NewProviderError(v.Name(), code, "Mailgun rejected the API key", err)
			providerErr.StatusCode = unexpected.Actual
			return providerErr
		}
		return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "failed to reach Mailgun: "+err.Error(), err)
	}

	return core.NewProviderError(v.Name(), core.ProviderCodeRejected, "domain "+v.domain+" not found in the Mailgun account", nil)
}

// Name returns the ESP type.
func (v *Verifier) Name() string {
	return "mailgun"
}
