package core

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// DefaultLocale is the locale the API assigns to templates created without one.
const DefaultLocale = "en-US"

// CredentialVerifier checks ESP credentials against the ESP itself.
// Implementations live in internal/providers.
type CredentialVerifier interface {
	// Verify performs a lightweight authenticated call against the ESP.
	// Returns an error if the credentials are rejected or the ESP is unreachable.
	Verify(ctx context.Context) error

	// Name returns the ESP type the verifier handles (e.g. "sendgrid").
	Name() string
}

// EspCredentials holds the provider specific credential fields sent with an ESP account.
type EspCredentials map[string]string

// Get retrieves a credential value by key.
func (ec EspCredentials) Get(key string) string {
	return ec[key]
}

// Set sets a credential value.
func (ec EspCredentials) Set(key, value string) {
	ec[key] = value
}

// APIStatus is the generic status envelope returned by write and delete calls.
type APIStatus struct {
	Status  string `json:"status"`
	Success bool   `json:"success"`
}

// Template is a sendwithus email template.
type Template struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Locale   string            `json:"locale"`
	Created  string            `json:"created,omitempty"`
	Versions []TemplateVersion `json:"versions"`
	Tags     []string          `json:"tags"`
}

// UnmarshalJSON decodes a template, keeping DefaultLocale when the body has no locale.
func (t *Template) UnmarshalJSON(data []byte) error {
	type alias Template
	decoded := alias{Locale: DefaultLocale}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*t = Template(decoded)
	return nil
}

// TemplateVersion is one version (HTML, text and subject) of a template in a locale.
type TemplateVersion struct {
	Name      string `json:"name"`
	ID        string `json:"id,omitempty"`
	Created   string `json:"created,omitempty"`
	Modified  string `json:"modified,omitempty"`
	HTML      string `json:"html"`
	Text      string `json:"text"`
	Subject   string `json:"subject"`
	Locale    string `json:"locale,omitempty"`
	Published bool   `json:"published"`
}

// EmailRecipient is the primary, CC or BCC recipient of an email.
type EmailRecipient struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// EmailSender overrides the template's default sender.
type EmailSender struct {
	Address string `json:"address,omitempty"`
	Name    string `json:"name,omitempty"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// EmailFile is an attachment or inline image; Data is base64 encoded.
type EmailFile struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// NewEmailFile reads r fully and returns it as a base64 encoded EmailFile.
func NewEmailFile(id string, r io.Reader) (EmailFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return EmailFile{}, fmt.Errorf("failed to read file %s: %w", id, err)
	}
	return EmailFile{
		ID:   id,
		Data: base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// Email is the body of a send request.
type Email struct {
	Template     string            `json:"template"`
	TemplateData map[string]any    `json:"template_data,omitempty"`
	Recipient    EmailRecipient    `json:"recipient"`
	CC           []EmailRecipient  `json:"cc,omitempty"`
	BCC          []EmailRecipient  `json:"bcc,omitempty"`
	Sender       *EmailSender      `json:"sender,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Inline       *EmailFile        `json:"inline,omitempty"`
	Files        []EmailFile       `json:"files,omitempty"`
	EspAccount   string            `json:"esp_account,omitempty"`
	Locale       string            `json:"locale,omitempty"`
	VersionName  string            `json:"version_name,omitempty"`
}

// EmailSummary describes the template version that was used for a send.
type EmailSummary struct {
	Name        string `json:"name"`
	VersionName string `json:"version_name"`
	Locale      string `json:"locale,omitempty"`
}

// EmailResponse is returned by the send endpoint.
type EmailResponse struct {
	Success   bool         `json:"success"`
	Status    string       `json:"status"`
	ReceiptID string       `json:"receipt_id"`
	Email     EmailSummary `json:"email"`
}

// Customer is a recipient profile stored by sendwithus.
type Customer struct {
	Email   string         `json:"email"`
	Data    map[string]any `json:"data,omitempty"`
	Locale  string         `json:"locale,omitempty"`
	Groups  []string       `json:"groups,omitempty"`
	Created int64          `json:"created,omitempty"`
}

// CustomerResponse wraps a single customer.
type CustomerResponse struct {
	Success  bool     `json:"success"`
	Status   string   `json:"status"`
	Customer Customer `json:"customer"`
}

// CustomerEmailLogsResponse wraps the delivery logs of one customer.
type CustomerEmailLogsResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Logs    []Log  `json:"logs"`
}

// UnmarshalJSON decodes the response, leaving Logs empty rather than nil when the body has none.
func (r *CustomerEmailLogsResponse) UnmarshalJSON(data []byte) error {
	type alias CustomerEmailLogsResponse
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Logs == nil {
		decoded.Logs = []Log{}
	}
	*r = CustomerEmailLogsResponse(decoded)
	return nil
}

// CustomerGroup is a named set of customers.
type CustomerGroup struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CustomerGroupUpdate carries the fields to change on a group; empty fields are left untouched.
type CustomerGroupUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CustomerGroupResponse wraps a single customer group.
type CustomerGroupResponse struct {
	Success bool          `json:"success"`
	Status  string        `json:"status"`
	Group   CustomerGroup `json:"group"`
}

// CustomerGroupsResponse wraps every customer group of the account.
type CustomerGroupsResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	Groups  []CustomerGroup `json:"groups"`
}

// Log is one delivery log entry.
type Log struct {
	Object           string `json:"object"`
	ID               string `json:"id"`
	Created          int64  `json:"created"`
	RecipientName    string `json:"recipient_name"`
	RecipientAddress string `json:"recipient_address"`
	Status           string `json:"status"`
	EmailID          string `json:"email_id"`
	EmailName        string `json:"email_name"`
	EmailVersion     string `json:"email_version"`
	EventsURL        string `json:"events_url,omitempty"`
	Message          string `json:"message,omitempty"`
}

// LogEvent is a single delivery event (sent, opened, clicked ...) of a log.
type LogEvent struct {
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// LogResendResponse is returned by the resend endpoint.
type LogResendResponse struct {
	Success bool         `json:"success"`
	Status  string       `json:"status"`
	ID      string       `json:"id"`
	Email   EmailSummary `json:"email"`
}

// EspAccount is an email service provider account registered with sendwithus.
type EspAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	EspType   string `json:"esp_type"`
	IsDefault bool   `json:"default"`
	Created   int64  `json:"created,omitempty"`
}

// EspAccountRequest registers a new ESP account.
type EspAccountRequest struct {
	Name        string         `json:"name"`
	EspType     string         `json:"esp_type"`
	Credentials EspCredentials `json:"credentials"`
}

// EspAccountResponse wraps a newly registered ESP account.
type EspAccountResponse struct {
	Success    bool       `json:"success"`
	Status     string     `json:"status"`
	EspAccount EspAccount `json:"esp_account"`
}

// DripStep is one delayed email of a drip campaign.
type DripStep struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	DelaySeconds int64  `json:"delay_seconds"`
	EmailID      string `json:"email_id"`
}

// DripCampaign is a sequence of emails triggered for a recipient.
type DripCampaign struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Enabled        bool       `json:"enabled"`
	TriggerEmailID string     `json:"trigger_email_id,omitempty"`
	DripSteps      []DripStep `json:"drip_steps,omitempty"`
}

// DripCampaignActivation starts a drip campaign for a recipient.
type DripCampaignActivation struct {
	Recipient  EmailRecipient   `json:"recipient"`
	CC         []EmailRecipient `json:"cc,omitempty"`
	BCC        []EmailRecipient `json:"bcc,omitempty"`
	Sender     *EmailSender     `json:"sender,omitempty"`
	EmailData  map[string]any   `json:"email_data,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Locale     string           `json:"locale,omitempty"`
	EspAccount string           `json:"esp_account,omitempty"`
}

// DripCampaignResponse is returned when a campaign is activated.
type DripCampaignResponse struct {
	Success          bool         `json:"success"`
	Status           string       `json:"status"`
	Message          string       `json:"message,omitempty"`
	RecipientAddress string       `json:"recipient_address"`
	DripCampaign     DripCampaign `json:"drip_campaign"`
}

// DripCampaignDeactivateResponse is returned when a recipient is removed from campaigns.
type DripCampaignDeactivateResponse struct {
	Success          bool   `json:"success"`
	Status           string `json:"status"`
	RecipientAddress string `json:"recipient_address"`
}

// RenderRequest asks the API to render a template version without sending it.
type RenderRequest struct {
	Template     string         `json:"template"`
	TemplateData map[string]any `json:"template_data,omitempty"`
	VersionID    string         `json:"version_id,omitempty"`
	VersionName  string         `json:"version_name,omitempty"`
	Locale       string         `json:"locale,omitempty"`
	Strict       bool           `json:"strict,omitempty"`
}

// RenderedTemplate identifies the template used by a render call.
type RenderedTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VersionName string `json:"version_name"`
	Locale      string `json:"locale,omitempty"`
}

// RenderResponse contains the rendered subject and bodies.
type RenderResponse struct {
	Success  bool             `json:"success"`
	Status   string           `json:"status"`
	Template RenderedTemplate `json:"template"`
	Subject  string           `json:"subject"`
	HTML     string           `json:"html"`
	Text     string           `json:"text"`
}
