// Package network fetches pages and scripts for the document loader.
//
// A source may be a local path, a file:// URL, an http(s) URL or a data:
// URL. Relative script sources resolve against the page that referenced
// them.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client is a small HTTP client with cookie support.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		userAgent:  "popperctl/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Get performs an HTTP GET request and reads the body.
func (c *Client) Get(ctx context.Context, urlStr string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html, text/javascript, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
