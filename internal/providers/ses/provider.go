package ses

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/lattiq/sendwithus/internal/core"
)

// Verifier checks AWS SES credentials by reading the account's send quota.
type Verifier struct {
	region       string
	accessKeyID  string
	secretKey    string
	sessionToken string
	endpoint     string
}

// NewVerifier creates an SES verifier from "region", "access_key_id",
// "secret_access_key" and the optional "session_token" and "endpoint".
func NewVerifier(creds core.EspCredentials) (*Verifier, error) {
	region := creds.Get("region")
	if region == "" {
		return nil, core.NewValidationError("region", "AWS region is required")
	}

	accessKeyID := creds.Get("access_key_id")
	if accessKeyID == "" {
		return nil, core.NewValidationError("access_key_id", "AWS access key ID is required")
	}

	secretKey := creds.Get("secret_access_key")
	if secretKey == "" {
		return nil, core.NewValidationError("secret_access_key", "secret access key is required when access key is provided")
	}

	return &Verifier{
		region:       region,
		accessKeyID:  accessKeyID,
		secretKey:    secretKey,
		sessionToken: creds.Get("session_token"),
		endpoint:     creds.Get("endpoint"),
	}, nil
}

// Verify calls GetSendQuota with the static credentials.
func (v *Verifier) Verify(ctx context.Context) error {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(v.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(v.accessKeyID, v.secretKey, v.sessionToken)),
	)
	if err != nil {
		return core.NewProviderError(v.Name(), core.ProviderCodeConfig, "failed to load AWS config: "+err.Error(), err)
	}

	client := ses.NewFromConfig(cfg, func(o *ses.Options) {
		if v.endpoint != "" {
			o.BaseEndpoint = aws.String(v.endpoint)
		}
	})

	if _, err := client.GetSendQuota(ctx, &ses.GetSendQuotaInput{}); err != nil {
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			code := core.ProviderCodeUnreachable
			status := respErr.HTTPStatusCode()
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				code = core.ProviderCodeRejected
			}
			providerErr := core.NewProviderError(v.Name(), code, "SES rejected the credentials", err)
			providerErr.StatusCode = status
			return providerErr
		}
		return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "failed to reach SES: "+err.Error(), err)
	}

	return nil
}

// Name returns the ESP type.
func (v *Verifier) Name() string {
	return "ses"
}
