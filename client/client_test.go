package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "issued-session-token"

// stubServer is a minimal in-memory rendition of the backend auth surface.
type stubServer struct {
	mu            sync.Mutex
	validTokens   map[string]bool
	consumed      map[string]bool
	exchangeCalls int32
	logoutCalls   int32
	exchangeGate  chan struct{} // when set, exchange blocks until closed
}

func newStubServer() *stubServer {
	return &stubServer{
		validTokens: map[string]bool{},
		consumed:    map[string]bool{},
	}
}

func (s *stubServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/session-data", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.exchangeCalls, 1)
		if s.exchangeGate != nil {
			<-s.exchangeGate
		}
		credential := r.Header.Get("X-Session-ID")
		s.mu.Lock()
		replayed := s.consumed[credential]
		s.consumed[credential] = true
		if !replayed {
			s.validTokens[testToken] = true
		}
		s.mu.Unlock()
		if credential == "" || replayed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":    "user-1",
				"email": "ana@example.com",
				"name":  "Ana",
			},
			"session_token": testToken,
		})
	})

	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":    "user-1",
				"email": "ana@example.com",
				"name":  "Ana",
			},
		})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.logoutCalls, 1)
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func (s *stubServer) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if len(auth) < 8 || auth[:7] != "Bearer " {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validTokens[auth[7:]]
}

func newTestRig(t *testing.T) (*stubServer, *Client) {
	t.Helper()
	stub := newStubServer()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return stub, New(srv.URL)
}

func TestStart_NoStoredToken(t *testing.T) {
	_, c := newTestRig(t)
	assert.Equal(t, StatusLoading, c.Status())

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, StatusUnauthenticated, c.Status())
	assert.Equal(t, DecisionRedirect, Decide(c.Status()))
}

func TestStart_ValidStoredToken(t *testing.T) {
	stub := newStubServer()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()
	stub.validTokens[testToken] = true

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(testToken))
	c := New(srv.URL, WithTokenStore(store))

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, StatusAuthenticated, c.Status())
	require.NotNil(t, c.Identity())
	assert.Equal(t, "ana@example.com", c.Identity().Email)
}

func TestStart_StaleStoredToken(t *testing.T) {
	stub := newStubServer()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("expired-token"))
	c := New(srv.URL, WithTokenStore(store))

	// A 401 on re-validation is the normal no-session outcome, not an error.
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, StatusUnauthenticated, c.Status())

	// The dead token was dropped from the store.
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStart_OnlyRunsOnce(t *testing.T) {
	_, c := newTestRig(t)

	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, StatusUnauthenticated, c.Status())
}

func TestHandleCallback_Success(t *testing.T) {
	_, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))

	clean, err := c.HandleCallback(context.Background(), "https://app.example.com/home#session_id=cred-1")
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/home", clean)
	assert.Equal(t, StatusAuthenticated, c.Status())
	require.NotNil(t, c.Identity())
	assert.Equal(t, "user-1", c.Identity().ID)

	stored, err := c.store.Load()
	require.NoError(t, err)
	assert.Equal(t, testToken, stored)
}

func TestHandleCallback_NoCredential(t *testing.T) {
	_, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))

	_, err := c.HandleCallback(context.Background(), "https://app.example.com/home")
	assert.ErrorIs(t, err, ErrNoCredential)
	// No credential means no state change.
	assert.Equal(t, StatusUnauthenticated, c.Status())

	_, err = c.HandleCallback(context.Background(), "https://app.example.com/home#other=1")
	assert.ErrorIs(t, err, ErrNoCredential)

	// The credential must be in the fragment; query parameters don't count.
	_, err = c.HandleCallback(context.Background(), "https://app.example.com/home?session_id=cred-1")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestHandleCallback_ServerRejection(t *testing.T) {
	stub, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))
	stub.consumed["burned"] = true

	_, err := c.HandleCallback(context.Background(), "https://app.example.com/#session_id=burned")
	require.Error(t, err)
	assert.Equal(t, StatusUnauthenticated, c.Status())
}

func TestHandleCallback_FailureKeepsLiveSession(t *testing.T) {
	stub, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))

	_, err := c.HandleCallback(context.Background(), "https://app.example.com/#session_id=cred-1")
	require.NoError(t, err)
	require.Equal(t, StatusAuthenticated, c.Status())

	// A second, already-burned credential arrives while a session is live.
	// The failed exchange must not cost the caller their session.
	stub.consumed["burned"] = true
	_, err = c.HandleCallback(context.Background(), "https://app.example.com/#session_id=burned")
	require.Error(t, err)
	assert.Equal(t, StatusAuthenticated, c.Status())
	require.NotNil(t, c.Identity())
	assert.Equal(t, "user-1", c.Identity().ID)

	stored, err := c.store.Load()
	require.NoError(t, err)
	assert.Equal(t, testToken, stored)
}

func TestHandleCallback_SingleFlight(t *testing.T) {
	stub := newStubServer()
	stub.exchangeGate = make(chan struct{})
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()
	c := New(srv.URL)
	require.NoError(t, c.Start(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := c.HandleCallback(context.Background(), "https://app.example.com/#session_id=cred-1")
		done <- err
	}()

	// Wait until the first exchange is in flight on the server.
	for atomic.LoadInt32(&stub.exchangeCalls) == 0 {
		time.Sleep(time.Millisecond)
	}

	// A concurrent callback must not issue a second exchange.
	_, err := c.HandleCallback(context.Background(), "https://app.example.com/#session_id=cred-1")
	assert.ErrorIs(t, err, ErrExchangeInFlight)

	close(stub.exchangeGate)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.exchangeCalls))
	assert.Equal(t, StatusAuthenticated, c.Status())
}

func TestLogout_ClearsStateEvenWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(newStubServer().handler())
	c := New(srv.URL)
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.store.Save(testToken))
	c.setState(StatusAuthenticated, &Identity{ID: "user-1"})

	// Server gone: logout still succeeds locally.
	srv.Close()
	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, StatusUnauthenticated, c.Status())
	assert.Nil(t, c.Identity())

	stored, err := c.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLogout_NoOpWhenUnauthenticated(t *testing.T) {
	stub, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, StatusUnauthenticated, c.Status())
	// No token stored, so no server call was made.
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.logoutCalls))
}

func TestLogout_CallsServerWhenTokenHeld(t *testing.T) {
	stub, c := newTestRig(t)
	require.NoError(t, c.Start(context.Background()))

	_, err := c.HandleCallback(context.Background(), "https://app.example.com/#session_id=cred-1")
	require.NoError(t, err)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.logoutCalls))
	assert.Equal(t, StatusUnauthenticated, c.Status())
}
