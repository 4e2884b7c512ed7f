package sendwithus

import (
	"context"

	"github.com/lattiq/sendwithus/internal/providers"
)

// NewCredentialVerifier returns the verifier for an ESP type ("sendgrid",
// "mailgun", "ses" or "smtp"). Missing credential fields are reported as a
// *ValidationError; unknown types wrap ErrUnsupportedEspType.
func NewCredentialVerifier(espType string, creds EspCredentials) (CredentialVerifier, error) {
	return providers.NewVerifier(espType, creds)
}

// VerifyEspCredentials checks creds against the ESP itself, without calling sendwithus.
// A refused credential set yields a *ProviderError whose Rejected method reports true.
func VerifyEspCredentials(ctx context.Context, espType string, creds EspCredentials) error {
	verifier, err := NewCredentialVerifier(espType, creds)
	if err != nil {
		return err
	}
	return verifier.Verify(ctx)
}
