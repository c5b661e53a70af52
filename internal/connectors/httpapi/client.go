package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps the response body kept in a StatusError.
const maxErrorBody = 512

// Client sends JSON requests relative to a base URL.
type Client struct {
	baseURL     string
	http        *http.Client
	headers     http.Header
	bearerToken string
	timeout     time.Duration
	limiter     *RateLimiter
}

// Option configures the client.
type Option func(*Client)

// WithBearerToken authenticates requests with an OAuth2 bearer token.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// WithHeader sets a header sent with every request, e.g. an API key.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimiter throttles requests.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		headers: make(http.Header),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.bearerToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.http)
		c.http = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.bearerToken}))
	} else {
		hc := *c.http
		c.http = &hc
	}
	c.http.Timeout = c.timeout

	c.headers.Set("Accept", "application/json")
	return c
}

// GetJSON fetches path with the query parameters and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.resolve(path, query)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if c.limiter != nil {
		c.limiter.UpdateFromResponse(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return &TransportError{URL: target, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}
