package domain

import "time"

type MatchActionType string

const (
	ActionLike MatchActionType = "like"
	ActionPass MatchActionType = "pass"
)

// MatchAction is an append-only record of one swipe decision. At most one
// action exists per (actor, target) pair; replays are ignored.
type MatchAction struct {
	ID                 string          `json:"id" db:"id"`
	ActorID            string          `json:"actor_id" db:"actor_id"`
	TargetID           string          `json:"target_id" db:"target_id"`
	Action             MatchActionType `json:"action" db:"action"`
	CompatibilityScore int             `json:"compatibility_score" db:"compatibility_score"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// MatchCandidate is materialized per queue fetch and never persisted.
type MatchCandidate struct {
	UserID             string   `json:"user_id"`
	Name               string   `json:"name"`
	Picture            *string  `json:"picture,omitempty"`
	CompatibilityScore int      `json:"compatibility_score"`
	Profile            *Profile `json:"profile"`
}
