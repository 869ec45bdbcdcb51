package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client timeout. Per-request
// context deadlines still apply; this bounds the whole request.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client entirely. Useful for
// tests and for callers that manage cookies themselves.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = h
		return nil
	}
}

// WithTokenStore replaces the default in-memory token store.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("token store cannot be nil")
		}
		c.store = s
		return nil
	}
}
