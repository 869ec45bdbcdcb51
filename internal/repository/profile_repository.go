package repository

import (
	"context"

	"github.com/manzafir/manzafir-backend/internal/domain"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// ListCandidates returns profiles whose user IDs are not in excludedIDs,
	// oldest first so queue order is stable per fetch.
	ListCandidates(ctx context.Context, excludedIDs []string, limit int) ([]*domain.Profile, error)
}
