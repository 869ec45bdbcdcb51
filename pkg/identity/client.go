// Package identity talks to the external identity provider that handles the
// actual OAuth dance. The backend only ever exchanges the one-time credential
// the provider hands back to the browser.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/manzafir/manzafir-backend/internal/domain"
)

const sessionDataPath = "/auth/v1/env/oauth/session-data"

// UserData is what the provider returns for a valid one-time credential.
type UserData struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Exchange redeems the one-time credential for the user's identity. The
// credential travels in a header so it never lands in access logs. The
// provider invalidates the credential on first use; a replay fails here with
// domain.ErrExchangeRejected.
func (c *Client) Exchange(ctx context.Context, sessionID string) (*UserData, error) {
	var data UserData
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Session-ID", sessionID).
		SetResult(&data).
		Get(sessionDataPath)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, domain.ErrExchangeRejected
	}
	if data.Email == "" {
		return nil, fmt.Errorf("identity provider returned no email: %w", domain.ErrExchangeRejected)
	}

	return &data, nil
}
