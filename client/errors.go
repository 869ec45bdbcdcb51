package client

import "errors"

// ErrNoCredential is returned by HandleCallback when the URL carries no
// one-time credential in its fragment. Not an auth failure; the caller
// simply isn't arriving from the identity provider.
var ErrNoCredential = errors.New("no session credential in URL fragment")

// ErrExchangeInFlight is returned when a credential exchange is already
// running; the concurrent call must not issue a second exchange.
var ErrExchangeInFlight = errors.New("credential exchange already in flight")

// ErrActionInFlight is returned by MatchQueue.RecordAction when a previous
// action for this queue has not settled yet.
var ErrActionInFlight = errors.New("match action already in flight")

// ErrQueueExhausted is returned by MatchQueue.Current when every fetched
// candidate has been acted on.
var ErrQueueExhausted = errors.New("match queue exhausted")

// ErrUnauthenticated is returned by calls that require a live session when
// the server rejects the stored token.
var ErrUnauthenticated = errors.New("not authenticated")
