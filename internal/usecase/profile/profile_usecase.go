package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// UpdateProfileRequest represents a full-profile update
type UpdateProfileRequest struct {
	TravelStyle      string   `json:"travel_style" binding:"required,oneof=adventurous relaxed cultural luxury budget"`
	BudgetPreference string   `json:"budget_preference" binding:"required,oneof=low medium high"`
	AgeRange         string   `json:"age_range" binding:"required,oneof=18-25 26-35 36-45 46+"`
	Interests        []string `json:"interests" binding:"omitempty,max=20"`
	Bio              *string  `json:"bio" binding:"omitempty,max=500"`
}

// ProfileResponse bundles identity and preferences, the shape the silent
// re-validation call expects.
type ProfileResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// GetProfile returns the user's identity and profile. A user who has never
// saved a profile gets one created with defaults on this first access.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	prof, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		prof = domain.DefaultProfile(userID)
		if err := uc.profileRepo.Upsert(ctx, prof); err != nil {
			return nil, fmt.Errorf("failed to create default profile: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &ProfileResponse{User: user, Profile: prof}, nil
}

// UpdateProfile replaces the user's profile. Owner-only by construction: the
// user ID comes from the session, never the body.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}

	prof := &domain.Profile{
		UserID:           userID,
		TravelStyle:      domain.TravelStyle(req.TravelStyle),
		BudgetPreference: domain.BudgetPreference(req.BudgetPreference),
		AgeRange:         domain.AgeRange(req.AgeRange),
		Interests:        interests,
		Bio:              req.Bio,
	}

	if err := uc.profileRepo.Upsert(ctx, prof); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return prof, nil
}
