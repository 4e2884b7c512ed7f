package sendwithus

import (
	"context"
	"net/http"
)

// Send sends a templated email.
// A retried send may deliver the email more than once.
func (c *Client) Send(ctx context.Context, email *Email) (*EmailResponse, error) {
	if email == nil {
		return nil, NewValidationError("email", "email is required")
	}
	if err := requireArg("template", email.Template); err != nil {
		return nil, err
	}
	if err := requireArg("recipient.address", email.Recipient.Address); err != nil {
		return nil, err
	}

	var resp EmailResponse
	rd := newRequest("Send", http.MethodPost, "send").withBody(email)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
