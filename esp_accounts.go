package sendwithus

import (
	"context"
	"fmt"
	"net/http"
)

// ESP types accepted by the esp_accounts endpoints.
const (
	EspTypeSendGrid = "sendgrid"
	EspTypeMailgun  = "mailgun"
	EspTypeSES      = "ses"
	EspTypeSMTP     = "smtp"
)

// espAccountsQuery filters ListEspAccounts.
type espAccountsQuery struct {
	EspType string `url:"esp_type,omitempty"`
}

// ListEspAccounts returns the ESP accounts of the account. An empty espType lists all of them.
func (c *Client) ListEspAccounts(ctx context.Context, espType string) ([]EspAccount, error) {
	rd, err := newRequest("ListEspAccounts", http.MethodGet, "esp_accounts").withQuery(espAccountsQuery{EspType: espType})
	if err != nil {
		return nil, err
	}

	var accounts []EspAccount
	if err := c.do(ctx, rd, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AddEspAccount registers an ESP account. When credential verification is
// enabled the credentials are checked against the ESP first and nothing is
// sent to sendwithus if they are rejected.
func (c *Client) AddEspAccount(ctx context.Context, req *EspAccountRequest) (*EspAccountResponse, error) {
	if req == nil {
		return nil, NewValidationError("esp_account", "request is required")
	}
	if err := requireArg("name", req.Name); err != nil {
		return nil, err
	}
	if err := requireArg("esp_type", req.EspType); err != nil {
		return nil, err
	}

	if c.snapshot().Esp.VerifyCredentials {
		if err := VerifyEspCredentials(ctx, req.EspType, req.Credentials); err != nil {
			return nil, fmt.Errorf("failed to verify %s credentials: %w", req.EspType, err)
		}
	}

	var resp EspAccountResponse
	rd := newRequest("AddEspAccount", http.MethodPost, "esp_accounts").withBody(req)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetDefaultEspAccount makes an ESP account the one used when a send names none.
func (c *Client) SetDefaultEspAccount(ctx context.Context, espAccountID string) (*EspAccount, error) {
	if err := requireArg("esp_id", espAccountID); err != nil {
		return nil, err
	}

	body := struct {
		EspID string `json:"esp_id"`
	}{EspID: espAccountID}

	var account EspAccount
	rd := newRequest("SetDefaultEspAccount", http.MethodPut, "esp_accounts/set_default").withBody(body)
	if err := c.do(ctx, rd, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
