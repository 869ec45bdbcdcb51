package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrPackageNotFound = errors.New("package not found")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	ErrCredentialConsumed = errors.New("one-time credential already consumed")
	ErrExchangeRejected   = errors.New("identity provider rejected credential")

	ErrActionAlreadyRecorded = errors.New("match action already recorded")
	ErrActionNotFound        = errors.New("match action not found")
	ErrCannotMatchSelf       = errors.New("cannot record match action on yourself")

	ErrInvalidInput = errors.New("invalid input")
)
