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

// matchStub serves a fixed queue and records the actions it receives.
type matchStub struct {
	mu         sync.Mutex
	queue      []map[string]any
	actions    []map[string]any
	mutualFor  map[string]bool
	failNext   bool
	actionGate chan struct{}
	calls      int32
}

func newMatchStub(candidateIDs ...string) *matchStub {
	s := &matchStub{mutualFor: map[string]bool{}}
	for i, id := range candidateIDs {
		s.queue = append(s.queue, map[string]any{
			"user_id":             id,
			"name":                id,
			"compatibility_score": 90 - i*10,
			"profile": map[string]any{
				"travel_style":      "relaxed",
				"budget_preference": "medium",
				"age_range":         "26-35",
				"interests":         []string{},
			},
		})
	}
	return s
}

func (s *matchStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/matches", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"matches": s.queue})
	})

	mux.HandleFunc("POST /api/matches/action", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.calls, 1)
		if s.actionGate != nil {
			<-s.actionGate
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		fail := s.failNext
		s.failNext = false
		if !fail {
			s.actions = append(s.actions, body)
		}
		mutual := s.mutualFor[body["target_user_id"].(string)]
		s.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"mutual_match": mutual})
	})

	return mux
}

func newQueueRig(t *testing.T, stub *matchStub) (*Client, *MatchQueue) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("valid-token"))
	c := New(srv.URL, WithTokenStore(store))

	q, err := c.FetchQueue(context.Background())
	require.NoError(t, err)
	return c, q
}

func TestFetchQueue_Unauthenticated(t *testing.T) {
	srv := httptest.NewServer(newMatchStub().handler())
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.FetchQueue(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMatchQueue_CursorWalk(t *testing.T) {
	_, q := newQueueRig(t, newMatchStub("alice", "bob"))

	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", cur.UserID)
	assert.Equal(t, 90, cur.CompatibilityScore)
	assert.False(t, q.Exhausted())

	_, err = q.RecordAction(context.Background(), ActionPass)
	require.NoError(t, err)

	cur, err = q.Current()
	require.NoError(t, err)
	assert.Equal(t, "bob", cur.UserID)

	_, err = q.RecordAction(context.Background(), ActionLike)
	require.NoError(t, err)

	assert.True(t, q.Exhausted())
	_, err = q.Current()
	assert.ErrorIs(t, err, ErrQueueExhausted)
	_, err = q.RecordAction(context.Background(), ActionLike)
	assert.ErrorIs(t, err, ErrQueueExhausted)
}

func TestMatchQueue_SendsCursorCandidate(t *testing.T) {
	stub := newMatchStub("alice", "bob")
	_, q := newQueueRig(t, stub)

	_, err := q.RecordAction(context.Background(), ActionLike)
	require.NoError(t, err)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.actions, 1)
	assert.Equal(t, "alice", stub.actions[0]["target_user_id"])
	assert.Equal(t, "like", stub.actions[0]["action"])
	assert.Equal(t, float64(90), stub.actions[0]["compatibility_score"])
}

func TestMatchQueue_MutualMatch(t *testing.T) {
	stub := newMatchStub("alice")
	stub.mutualFor["alice"] = true
	_, q := newQueueRig(t, stub)

	mutual, err := q.RecordAction(context.Background(), ActionLike)
	require.NoError(t, err)
	assert.True(t, mutual)
}

func TestMatchQueue_CursorAdvancesOnFailure(t *testing.T) {
	stub := newMatchStub("alice", "bob")
	stub.failNext = true
	_, q := newQueueRig(t, stub)

	// The failed send still settles the candidate: no retry, no re-present.
	_, err := q.RecordAction(context.Background(), ActionLike)
	require.Error(t, err)

	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, "bob", cur.UserID)
}

func TestMatchQueue_NoAdvanceWithoutRequest(t *testing.T) {
	stub := newMatchStub("alice", "bob")
	c, q := newQueueRig(t, stub)

	// Session evaporates between fetch and action. Nothing reached the
	// server, so the candidate must not be burned.
	require.NoError(t, c.store.Clear())
	_, err := q.RecordAction(context.Background(), ActionLike)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.calls))

	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", cur.UserID)
}

func TestMatchQueue_ActionSingleFlight(t *testing.T) {
	stub := newMatchStub("alice", "bob")
	stub.actionGate = make(chan struct{})
	_, q := newQueueRig(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := q.RecordAction(context.Background(), ActionLike)
		done <- err
	}()

	for atomic.LoadInt32(&stub.calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	// Concurrent action settles nothing and advances nothing.
	_, err := q.RecordAction(context.Background(), ActionPass)
	assert.ErrorIs(t, err, ErrActionInFlight)

	close(stub.actionGate)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))

	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, "bob", cur.UserID)
}
