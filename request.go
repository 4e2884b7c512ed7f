package sendwithus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
	"golang.org/x/text/language"
)

// requestDescriptor describes one API call. It is built per call and never shared.
type requestDescriptor struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

func newRequest(op, method, path string) *requestDescriptor {
	return &requestDescriptor{
		op:     op,
		method: method,
		path:   path,
	}
}

// withBody sets the value to be JSON encoded as the request body.
func (r *requestDescriptor) withBody(body any) *requestDescriptor {
	r.body = body
	return r
}

// withQuery encodes a filter struct with `url` tags into the query string.
func (r *requestDescriptor) withQuery(opts any) (*requestDescriptor, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, NewValidationErrorWithValue("query", "failed to encode query parameters", err.Error())
	}
	if len(values) > 0 {
		r.query = values
	}
	return r, nil
}

// relativeURL returns path[?query], relative to /api/{version}/.
func (r *requestDescriptor) relativeURL() string {
	if len(r.query) == 0 {
		return r.path
	}
	return r.path + "?" + r.query.Encode()
}

// preparedRequest is the immutable, attempt independent part of an HTTP request.
type preparedRequest struct {
	method string
	url    string
	header http.Header
	body   []byte
}

// prepare validates the configuration snapshot and builds the URL, headers and body.
// Nothing is sent over the wire.
func prepare(cfg *Config, info *VersionInfo, rd *requestDescriptor) (*preparedRequest, error) {
	if err := cfg.validateForRequest(); err != nil {
		return nil, err
	}

	pr := &preparedRequest{
		method: rd.method,
		url:    cfg.baseURL() + rd.relativeURL(),
		header: make(http.Header),
	}

	pr.header.Set(HeaderAPIKey, cfg.APIKey)
	pr.header.Set(HeaderAPIClient, info.ClientHeader())
	pr.header.Set("User-Agent", info.UserAgent())
	pr.header.Set("Accept", "application/json")

	if rd.body != nil {
		body, err := json.Marshal(rd.body)
		if err != nil {
			cfgErr := NewConfigurationError("failed to encode request body: " + err.Error())
			cfgErr.Cause = err
			return nil, cfgErr
		}
		pr.body = body
		pr.header.Set("Content-Type", "application/json")
	}

	return pr, nil
}

// newHTTPRequest creates a fresh *http.Request for one attempt.
func (pr *preparedRequest) newHTTPRequest(ctx context.Context) (*http.Request, error) {
	var body *bytes.Reader
	if pr.body != nil {
		body = bytes.NewReader(pr.body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, pr.method, pr.url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, pr.method, pr.url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = pr.header.Clone()
	return req, nil
}

// resourcePath joins path segments, escaping each one.
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// requireArg returns a validation error when a required path argument is empty.
func requireArg(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, field+" is required")
	}
	return nil
}

// validateLocale rejects malformed BCP 47 tags. The tag itself is sent as given:
// language.Parse also maps legacy codes ("iw" -> "he"), which names another locale.
func validateLocale(locale string) error {
	if _, err := language.Parse(locale); err != nil {
		return NewValidationErrorWithValue("locale", "invalid locale tag", locale)
	}
	return nil
}

// templatePath builds templates/{id}[/locales/{locale}][/rest...].
// An empty locale selects the path without the locale segment.
func templatePath(templateID, locale string, rest ...string) (string, error) {
	if err := requireArg("template_id", templateID); err != nil {
		return "", err
	}

	segments := []string{"templates", templateID}
	if locale != "" {
		if err := validateLocale(locale); err != nil {
			return "", err
		}
		segments = append(segments, "locales", locale)
	}
	segments = append(segments, rest...)

	return resourcePath(segments...), nil
}
