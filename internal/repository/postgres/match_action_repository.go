package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
)

type matchActionRepository struct {
	db *sqlx.DB
}

func NewMatchActionRepository(db *sqlx.DB) repository.MatchActionRepository {
	return &matchActionRepository{db: db}
}

func (r *matchActionRepository) Create(ctx context.Context, action *domain.MatchAction) error {
	// The unique (actor_id, target_id) constraint makes replays a no-op; the
	// first recorded action always wins.
	query := `
		INSERT INTO match_actions (id, actor_id, target_id, action, compatibility_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (actor_id, target_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		action.ID, action.ActorID, action.TargetID, action.Action, action.CompatibilityScore)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActionAlreadyRecorded
	}
	return nil
}

func (r *matchActionRepository) Get(ctx context.Context, actorID, targetID string) (*domain.MatchAction, error) {
	var action domain.MatchAction
	query := `SELECT * FROM match_actions WHERE actor_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &action, query, actorID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActionNotFound
		}
		return nil, err
	}
	return &action, nil
}

func (r *matchActionRepository) Exists(ctx context.Context, actorID, targetID string, actionType domain.MatchActionType) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM match_actions
			WHERE actor_id = $1 AND target_id = $2 AND action = $3
		)
	`
	err := r.db.GetContext(ctx, &exists, query, actorID, targetID, actionType)
	return exists, err
}

func (r *matchActionRepository) ListTargetIDs(ctx context.Context, actorID string) ([]string, error) {
	var targetIDs []string
	query := `SELECT target_id FROM match_actions WHERE actor_id = $1`
	err := r.db.SelectContext(ctx, &targetIDs, query, actorID)
	return targetIDs, err
}
