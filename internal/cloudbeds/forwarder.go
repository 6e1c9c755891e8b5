package cloudbeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the upstream base used when Config.BaseURL is empty.
	DefaultBaseURL = "https://hotels.cloudbeds.com/api/v1.3"

	// MissingCredentialMessage is the Failure message when no token is configured.
	MissingCredentialMessage = "Missing Cloudbeds credentials. Set CLOUDBEDS_API_KEY (or CLOUDBEDS_ACCESS_TOKEN)."

	fallbackFailureMessage = "Cloudbeds request failed"
)

// Config is the upstream configuration of a Forwarder.
type Config struct {
	APIKey      string        // Preferred bearer token.
	AccessToken string        // Used when APIKey is empty.
	BaseURL     string        // Prefix for relative paths; DefaultBaseURL when empty.
	Timeout     time.Duration // Zero keeps the client default (no timeout).
}

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a single call to forward upstream.
type Request struct {
	Path   string
	Method string
	Header http.Header
	Body   []byte
}

// Forwarder relays requests to the Cloudbeds API with a bearer credential.
type Forwarder struct {
	cfg    Config
	client Doer
}

// NewForwarder creates a Forwarder. A nil client is replaced by an *http.Client
// honoring cfg.Timeout.
func NewForwarder(cfg Config, client Doer) *Forwarder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Forwarder{cfg: cfg, client: client}
}

// Token returns the bearer token to use, or false if none is configured.
func (c Config) Token() (string, bool) {
	if c.APIKey != "" {
		return c.APIKey, true
	}
	if c.AccessToken != "" {
		return c.AccessToken, true
	}
	return "", false
}

// URL resolves path against the base URL. Paths starting with "http" are absolute.
func (f *Forwarder) URL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return f.cfg.BaseURL + path
}

// Forward performs exactly one upstream call, except when no credential is
// configured, in which case it returns a 401 Failure without touching the network.
// The returned error is non-nil only when the call itself could not be made.
func (f *Forwarder) Forward(ctx context.Context, r Request) (Outcome, error) {
	token, ok := f.cfg.Token()
	if !ok {
		return Failure{Status: http.StatusUnauthorized, Message: MissingCredentialMessage}, nil
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.URL(r.Path), body)
	if err != nil {
		return nil, fmt.Errorf("error in creating the upstream request: %w", err)
	}

	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", jsonContentType)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error in doing the upstream request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	asJSON := isJSON(res.Header)
	decoded := decodeBody(res.Body, asJSON)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return Success{Body: decoded}, nil
	}

	return Failure{
		Status:  res.StatusCode,
		Message: failureMessage(res, asJSON, decoded),
		Body:    decoded,
		Reached: true,
	}, nil
}

func failureMessage(res *http.Response, asJSON bool, body Body) string {
	if asJSON {
		return string(body.Raw)
	}
	if phrase := statusPhrase(res); phrase != "" {
		return phrase
	}
	return fallbackFailureMessage
}

// statusPhrase strips the numeric code from res.Status ("404 Not Found" -> "Not Found").
func statusPhrase(res *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
}
