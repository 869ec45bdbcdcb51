package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, travel_style, budget_preference, age_range, interests, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET travel_style = EXCLUDED.travel_style,
		    budget_preference = EXCLUDED.budget_preference,
		    age_range = EXCLUDED.age_range,
		    interests = EXCLUDED.interests,
		    bio = EXCLUDED.bio,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.TravelStyle, profile.BudgetPreference,
		profile.AgeRange, pq.Array(profile.Interests), profile.Bio,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT user_id, travel_style, budget_preference, age_range, interests, bio,
		       created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.TravelStyle, &profile.BudgetPreference,
		&profile.AgeRange, pq.Array(&profile.Interests), &profile.Bio,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListCandidates(ctx context.Context, excludedIDs []string, limit int) ([]*domain.Profile, error) {
	query := `
		SELECT user_id, travel_style, budget_preference, age_range, interests, bio,
		       created_at, updated_at
		FROM profiles
		WHERE NOT (user_id = ANY($1))
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(excludedIDs), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.UserID, &profile.TravelStyle, &profile.BudgetPreference,
			&profile.AgeRange, pq.Array(&profile.Interests), &profile.Bio,
			&profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, rows.Err()
}
