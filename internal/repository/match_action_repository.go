package repository

import (
	"context"

	"github.com/manzafir/manzafir-backend/internal/domain"
)

type MatchActionRepository interface {
	// Create inserts the action. Returns domain.ErrActionAlreadyRecorded when
	// an action for the same (actor, target) pair already exists; the stored
	// action is never overwritten.
	Create(ctx context.Context, action *domain.MatchAction) error
	Get(ctx context.Context, actorID, targetID string) (*domain.MatchAction, error)
	// Exists reports whether actor has recorded the given action on target.
	Exists(ctx context.Context, actorID, targetID string, action domain.MatchActionType) (bool, error)
	// ListTargetIDs returns every user the actor has already acted on.
	ListTargetIDs(ctx context.Context, actorID string) ([]string, error)
}
