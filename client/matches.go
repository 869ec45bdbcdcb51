package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
)

// Action is a swipe decision on the candidate at the queue cursor.
type Action string

const (
	ActionLike Action = "like"
	ActionPass Action = "pass"
)

// CandidateProfile is the public slice of a candidate's travel profile.
type CandidateProfile struct {
	TravelStyle      string   `json:"travel_style"`
	BudgetPreference string   `json:"budget_preference"`
	AgeRange         string   `json:"age_range"`
	Interests        []string `json:"interests"`
	Bio              *string  `json:"bio,omitempty"`
}

// Candidate is one scored entry in the match queue.
type Candidate struct {
	UserID             string            `json:"user_id"`
	Name               string            `json:"name"`
	Picture            *string           `json:"picture,omitempty"`
	CompatibilityScore int               `json:"compatibility_score"`
	Profile            *CandidateProfile `json:"profile"`
}

// MatchQueue is one fetched batch of candidates with a monotone cursor. The
// cursor only moves forward: every settled RecordAction advances it exactly
// once, whether the server call succeeded or not, so a candidate is never
// shown twice within a batch. Fetch a new queue when Exhausted.
type MatchQueue struct {
	client     *Client
	candidates []Candidate
	message    string

	mu       sync.Mutex
	cursor   int
	inflight uint32
}

// FetchQueue retrieves the current match queue for the authenticated user.
func (c *Client) FetchQueue(ctx context.Context) (*MatchQueue, error) {
	token, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var resp struct {
		Matches []Candidate `json:"matches"`
		Message string      `json:"message"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, "/api/matches", token, nil, &resp)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	default:
		return nil, fmt.Errorf("fetch queue: server returned %d", status)
	}

	return &MatchQueue{
		client:     c,
		candidates: resp.Matches,
		message:    resp.Message,
	}, nil
}

// Current returns the candidate at the cursor, or ErrQueueExhausted.
func (q *MatchQueue) Current() (*Candidate, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cursor >= len(q.candidates) {
		return nil, ErrQueueExhausted
	}
	return &q.candidates[q.cursor], nil
}

// Exhausted reports whether every candidate in this batch has been acted on.
func (q *MatchQueue) Exhausted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cursor >= len(q.candidates)
}

// Message returns the optional server hint that accompanied an empty queue.
func (q *MatchQueue) Message() string {
	return q.message
}

// RecordAction submits the decision for the candidate at the cursor and
// reports whether it produced a mutual match. Only one action may be in
// flight per queue; concurrent calls fail with ErrActionInFlight. The cursor
// advances once the call settles, on failure as well as success, so a failed
// send skips the candidate rather than re-presenting them.
func (q *MatchQueue) RecordAction(ctx context.Context, action Action) (bool, error) {
	if !atomic.CompareAndSwapUint32(&q.inflight, 0, 1) {
		return false, ErrActionInFlight
	}
	defer atomic.StoreUint32(&q.inflight, 0)

	q.mu.Lock()
	if q.cursor >= len(q.candidates) {
		q.mu.Unlock()
		return false, ErrQueueExhausted
	}
	candidate := q.candidates[q.cursor]
	q.mu.Unlock()

	token, err := q.client.store.Load()
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return false, ErrUnauthenticated
	}

	// The candidate is only settled once a request was actually issued; a
	// call that never left the client keeps the cursor in place.
	defer func() {
		q.mu.Lock()
		q.cursor++
		q.mu.Unlock()
	}()

	body := map[string]any{
		"target_user_id":      candidate.UserID,
		"action":              string(action),
		"compatibility_score": candidate.CompatibilityScore,
	}
	var resp struct {
		MutualMatch bool `json:"mutual_match"`
	}
	status, err := q.client.doJSON(ctx, http.MethodPost, "/api/matches/action", token, body, &resp)
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		return resp.MutualMatch, nil
	case http.StatusUnauthorized:
		return false, ErrUnauthenticated
	default:
		return false, fmt.Errorf("record action: server returned %d", status)
	}
}
