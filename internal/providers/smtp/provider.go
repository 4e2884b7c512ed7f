package smtp

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/lattiq/sendwithus/internal/core"
)

// Verifier checks SMTP credentials by connecting and authenticating.
type Verifier struct {
	host       string
	port       string
	username   string
	password   string
	useTLS     bool
	skipVerify bool
}

// NewVerifier creates an SMTP verifier from "host", "port", "username",
// "password" and the optional "tls" and "tls_skip_verify" flags.
func NewVerifier(creds core.EspCredentials) (*Verifier, error) {
	host := creds.Get("host")
	if host == "" {
		return nil, core.NewValidationError("host", "SMTP host is required")
	}

	port := creds.Get("port")
	if port == "" {
		return nil, core.NewValidationError("port", "SMTP port is required")
	}

	// Validate port number
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, core.NewValidationErrorWithValue("port", "invalid port number", port)
	}

	return &Verifier{
		host:       host,
		port:       port,
		username:   creds.Get("username"),
		password:   creds.Get("password"),
		useTLS:     creds.Get("tls") == "true",
		skipVerify: creds.Get("tls_skip_verify") == "true",
	}, nil
}

// Verify dials the server, upgrades to TLS when asked and authenticates.
func (v *Verifier) Verify(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(v.host, v.port))
	if err != nil {
		return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "failed to connect: "+err.Error(), err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, v.host)
	if err != nil {
		conn.Close()
		return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "failed to start SMTP session: "+err.Error(), err)
	}
	defer client.Close()

	if v.useTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return core.NewProviderError(v.Name(), core.ProviderCodeConfig, "server does not support STARTTLS", nil)
		}
		tlsConfig := &tls.Config{
			ServerName:         v.host,
			InsecureSkipVerify: v.skipVerify, // #nosec G402 -- opt-in for development servers
			MinVersion:         tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return core.NewProviderError(v.Name(), core.ProviderCodeUnreachable, "STARTTLS failed: "+err.Error(), err)
		}
	}

	if v.username != "" && v.password != "" {
		auth := smtp.PlainAuth("", v.username, v.password, v.host)
		if err := client.Auth(auth); err != nil {
			return core.NewProviderError(v.Name(), core.ProviderCodeRejected, "authentication failed: "+err.Error(), err)
		}
	}

	return client.Quit()
}

// Name returns the ESP type.
func (v *Verifier) Name() string {
	return "smtp"
}
