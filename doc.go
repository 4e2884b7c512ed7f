// Package sendwithus is a typed Go client for the sendwithus transactional email API.
//
// It manages templates (with their versions and locales), sends templated emails,
// and manages customers, customer groups, delivery logs, ESP accounts and drip
// campaigns, without hand-rolled HTTP calls.
//
// # Basic Usage
//
//	client, err := sendwithus.New(sendwithus.DefaultConfig(),
//		sendwithus.WithAPIKey(os.Getenv("SENDWITHUS_API_KEY")),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Send(ctx, &sendwithus.Email{
//		Template:  "tem_welcome",
//		Recipient: sendwithus.EmailRecipient{Address: "user@example.com"},
//		TemplateData: map[string]any{
//			"first_name": "Ada",
//		},
//	})
//
// # Errors
//
// Match errors with errors.Is against the sentinel of each kind, or use
// IsClientError and friends:
//
//   - ErrConfiguration: nothing was sent (no API key, bad timeout, missing argument)
//   - ErrClient: the server rejected the input (4xx), never retried
//   - ErrServer: the server kept failing (5xx or an unexpected status) after every retry
//   - ErrTransport: the server was never reached (timeout, connection failure)
//   - ErrDecode: a 2xx body did not match the expected shape
//
// Failures of the HTTP exchange are an *Error carrying the status, raw body and
// attempt count. Missing or malformed arguments are a *ValidationError naming
// the field, and it also matches ErrConfiguration. AddEspAccount wraps a
// *ProviderError when ESP credential verification fails; use errors.As to reach
// the concrete type.
//
// # Retries
//
// Transport failures and 5xx responses are retried up to Config.RetryCount
// additional times with capped exponential backoff, honouring Retry-After.
// Each attempt gets the full Config.Timeout. A retried POST (for example Send)
// may take effect more than once on the server.
//
// # Configuration
//
// Each Client owns its configuration; there is no package level state. The API
// key, timeout and retry count can be changed with SetAPIKey, SetTimeout and
// SetRetryCount. Every call reads the configuration once when it starts, so
// calls in flight during a change may use either value.
//
// # Observability
//
// Each call creates an OpenTelemetry span named sendwithus.Client.<Method>.
// Failed attempts are logged at debug level to the zerolog.Logger given with
// WithLogger; the default logger discards everything.
package sendwithus
