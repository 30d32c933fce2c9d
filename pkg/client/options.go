package client

import (
	"net/http"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds each request when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient injects the http.Client used for every request.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithRequestTimeout overrides the per-request timeout. Zero disables it.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}
