// Package hunter is a client for the Hunter email discovery REST API.
package hunter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/hunter/internal/schemas"
	root "github.com/jonathan/hunter/schemas"
)

// DefaultBaseURL is the public Hunter API host.
const DefaultBaseURL = "https://api.hunter.io"

// DefaultAPIVersion is the API version path segment.
const DefaultAPIVersion = "v2"

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "hunter-cli/2.0"

// Remote endpoints, relative to {base}/{version}/.
const (
	EndpointDomainSearch  = "domain-search"
	EndpointEmailFinder   = "email-finder"
	EndpointEmailVerifier = "email-verifier"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 10 << 20

// Options configures the client.
type Options struct {
	BaseURL    string
	APIVersion string
	// Timeout of zero leaves the HTTP client default (no timeout).
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// DefaultOptions returns the settings for the public API.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:    DefaultBaseURL,
		APIVersion: DefaultAPIVersion,
		UserAgent:  DefaultUserAgent,
	}
}

// Client issues API calls with a fixed key and version.
type Client struct {
	apiKey     string
	apiVersion string
	baseURL    string
	userAgent  string
	http       *http.Client
	logger     *log.Logger
}

// New creates a client for the given API key. Nil options use
// DefaultOptions; empty fields fall back to their defaults.
func New(apiKey string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	c := &Client{
		apiKey:     apiKey,
		apiVersion: opts.APIVersion,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		http:       opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Search returns the email addresses found for a domain.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	q := url.Values{}
	q.Set("domain", p.Domain)
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.Type != "" {
		q.Set("type", p.Type)
	}

	var out envelope[SearchResult]
	if err := c.get(ctx, EndpointDomainSearch, root.DomainSearch, q, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Find returns the most likely address of a person at a domain.
func (c *Client) Find(ctx context.Context, p FindParams) (*FindResult, error) {
	q := url.Values{}
	q.Set("domain", p.Domain)
	q.Set("first_name", p.FirstName)
	q.Set("last_name", p.LastName)

	var out envelope[FindResult]
	if err := c.get(ctx, EndpointEmailFinder, root.EmailFinder, q, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Verify checks whether an address is deliverable.
func (c *Client) Verify(ctx context.Context, email string) (*VerifyResult, error) {
	q := url.Values{}
	q.Set("email", email)

	var out envelope[VerifyResult]
	if err := c.get(ctx, EndpointEmailVerifier, root.EmailVerifier, q, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// get performs one GET round trip. The status is checked before the body is
// parsed so a malformed error page still surfaces as a RequestError.
func (c *Client) get(ctx context.Context, endpoint, schema string, q url.Values, out any) error {
	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + "/" + c.apiVersion + "/" + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Message: "failed to create request", Cause: redact(err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Message: "HTTP request failed", Cause: redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &RequestError{Endpoint: endpoint, Message: "failed to read response body", Cause: err}
	}

	c.logger.Debug("api call", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorDetails(body),
		}
	}

	if err := schemas.ValidateEmbedded(schema, body); err != nil {
		return &ResponseError{Endpoint: endpoint, Message: "unexpected response body", Cause: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseError{Endpoint: endpoint, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// errorDetails extracts the human-readable details of an error body, or ""
// when the body is not in the documented error shape.
func errorDetails(body []byte) string {
	var payload apiErrors
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	details := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		if e.Details != "" {
			details = append(details, e.Details)
		}
	}
	return strings.Join(details, "; ")
}

// redact strips the query string from url.Error so the API key never
// reaches printed messages.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
		}
	}
	return err
}
