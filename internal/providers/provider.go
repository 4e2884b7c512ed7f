package providers

import (
	"errors"
	"fmt"

	"github.com/lattiq/sendwithus/internal/core"
	"github.com/lattiq/sendwithus/internal/providers/mailgun"
	"github.com/lattiq/sendwithus/internal/providers/sendgrid"
	"github.com/lattiq/sendwithus/internal/providers/ses"
	"github.com/lattiq/sendwithus/internal/providers/smtp"
)

// ErrUnsupportedEspType is returned for an ESP type without a verifier.
var ErrUnsupportedEspType = errors.New("unsupported ESP type")

// NewVerifier creates the credential verifier for an ESP type.
func NewVerifier(espType string, creds core.EspCredentials) (core.CredentialVerifier, error) {
	var (
		verifier core.CredentialVerifier
		err      error
	)

	switch espType {
	case "sendgrid":
		verifier, err = newSendGridVerifier(creds)
	case "mailgun":
		verifier, err = newMailgunVerifier(creds)
	case "ses":
		verifier, err = newSESVerifier(creds)
	case "smtp":
		verifier, err = newSMTPVerifier(creds)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEspType, espType)
	}
	if err != nil {
		return nil, err
	}

	return verifier, nil
}

func newSendGridVerifier(creds core.EspCredentials) (core.CredentialVerifier, error) {
	v, err := sendgrid.NewVerifier(creds)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func newMailgunVerifier(creds core.EspCredentials) (core.CredentialVerifier, error) {
	v, err := mailgun.NewVerifier(creds)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func newSESVerifier(creds core.EspCredentials) (core.CredentialVerifier, error) {
	v, err := ses.NewVerifier(creds)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func newSMTPVerifier(creds core.EspCredentials) (core.CredentialVerifier, error) {
	v, err := smtp.NewVerifier(creds)
	if err != nil {
		return nil, err
	}
	return v, nil
}
