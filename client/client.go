package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// credentialParam is the fragment parameter the identity provider appends to
// the callback URL. Fragments never reach the server or its logs, which is
// the point of carrying the credential there.
const credentialParam = "session_id"

// Identity is the authenticated user as reported by the server.
type Identity struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
}

// Client is the session-aware SDK for the Manzafir backend. All state
// transitions go through Start, HandleCallback and Logout; Status and
// Identity are safe to read from any goroutine.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu       sync.Mutex
	status   Status
	identity *Identity

	started    uint32
	exchanging uint32
}

// New constructs a Client for the given server base URL. The Client starts
// in StatusLoading; call Start before consulting Decide.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   NewMemoryTokenStore(),
		status:  StatusLoading,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	return c
}

// Status returns the current session state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Identity returns the cached authenticated user, or nil when not
// authenticated.
func (c *Client) Identity() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

func (c *Client) setState(status Status, identity *Identity) {
	c.mu.Lock()
	c.status = status
	c.identity = identity
	c.mu.Unlock()
}

// Start resolves StatusLoading with a single silent re-validation of any
// stored token against GET /api/profile. A 401 is the normal no-session
// signal, not an error; only transport failures are returned. Subsequent
// calls are no-ops.
func (c *Client) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&c.started, 0, 1) {
		return nil
	}

	token, err := c.store.Load()
	if err != nil {
		c.setState(StatusUnauthenticated, nil)
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		c.setState(StatusUnauthenticated, nil)
		return nil
	}

	var resp struct {
		User *Identity `json:"user"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, "/api/profile", token, nil, &resp)
	if err != nil {
		c.setState(StatusUnauthenticated, nil)
		return err
	}

	switch {
	case status == http.StatusOK && resp.User != nil:
		c.setState(StatusAuthenticated, resp.User)
	case status == http.StatusUnauthorized:
		// Stored token no longer valid. Expected after expiry.
		_ = c.store.Clear()
		c.setState(StatusUnauthenticated, nil)
	default:
		c.setState(StatusUnauthenticated, nil)
	}
	return nil
}

// HandleCallback completes the identity-provider redirect. It extracts the
// one-time credential from the URL fragment, exchanges it for a session, and
// returns the URL with the fragment stripped so the caller can replace it in
// history. A URL without a credential returns ErrNoCredential and changes no
// state. Only one exchange runs at a time; concurrent calls fail with
// ErrExchangeInFlight rather than burning the credential twice. A failed
// exchange drops an unauthenticated caller back to Unauthenticated but
// leaves an already-held session intact.
func (c *Client) HandleCallback(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse callback URL: %w", err)
	}

	frag, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", ErrNoCredential
	}
	credential := frag.Get(credentialParam)
	if credential == "" {
		return "", ErrNoCredential
	}

	if !atomic.CompareAndSwapUint32(&c.exchanging, 0, 1) {
		return "", ErrExchangeInFlight
	}
	defer atomic.StoreUint32(&c.exchanging, 0)

	// A failed exchange must not cost the caller a session they already
	// hold; only an unauthenticated caller ends Unauthenticated.
	c.mu.Lock()
	prevStatus, prevIdentity := c.status, c.identity
	c.mu.Unlock()
	restore := func() {
		if prevStatus == StatusAuthenticated {
			c.setState(StatusAuthenticated, prevIdentity)
		} else {
			c.setState(StatusUnauthenticated, nil)
		}
	}

	c.setState(StatusAuthenticating, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/session-data", nil)
	if err != nil {
		restore()
		return "", err
	}
	req.Header.Set("X-Session-ID", credential)

	httpResp, err := c.http.Do(req)
	if err != nil {
		restore()
		return "", fmt.Errorf("exchange credential: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		restore()
		return "", fmt.Errorf("exchange credential: server returned %d", httpResp.StatusCode)
	}

	var resp struct {
		User  *Identity `json:"user"`
		Token string    `json:"session_token"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		restore()
		return "", fmt.Errorf("decode exchange response: %w", err)
	}

	if err := c.store.Save(resp.Token); err != nil {
		restore()
		return "", fmt.Errorf("persist token: %w", err)
	}
	c.setState(StatusAuthenticated, resp.User)

	u.Fragment = ""
	return u.String(), nil
}

// Logout ends the session. The server call is best-effort; local state is
// cleared regardless, so Logout always leaves the client Unauthenticated.
// Calling it while already Unauthenticated is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	token, _ := c.store.Load()
	if token != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			if resp, doErr := c.http.Do(req); doErr == nil {
				_ = resp.Body.Close()
			}
		}
	}

	_ = c.store.Clear()
	c.setState(StatusUnauthenticated, nil)
	return nil
}

// doJSON issues an authenticated JSON request and decodes a 200 response
// into out. Non-200 statuses are returned to the caller undecoded.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
