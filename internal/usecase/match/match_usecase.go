package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
	"github.com/rs/zerolog"
)

const (
	// queueSize is how many candidates one fetch delivers; the queue is
	// consumed whole, there is no pagination.
	queueSize = 5
	// candidateScanLimit bounds how many profiles are scored per fetch.
	candidateScanLimit = 50
)

type MatchUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	actionRepo  repository.MatchActionRepository
	log         zerolog.Logger
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	actionRepo repository.MatchActionRepository,
	log zerolog.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		actionRepo:  actionRepo,
		log:         log,
	}
}

// QueueResponse is one whole match queue. Order is server-determined and
// stable for the duration of the fetch.
type QueueResponse struct {
	Matches []*domain.MatchCandidate `json:"matches"`
	Message string                   `json:"message,omitempty"`
}

// ActionRequest represents one pass/like decision
type ActionRequest struct {
	TargetUserID       string `json:"target_user_id" binding:"required"`
	Action             string `json:"action" binding:"required,oneof=like pass"`
	CompatibilityScore int    `json:"compatibility_score" binding:"min=0,max=100"`
}

// ActionResult reports whether the decision completed a mutual match.
type ActionResult struct {
	MutualMatch bool `json:"mutual_match"`
}

// GetQueue builds one queue of candidates for the user: everyone with a
// profile, minus the user themself and everyone they have already acted on,
// scored and sorted best-first.
func (uc *MatchUseCase) GetQueue(ctx context.Context, userID string) (*QueueResponse, error) {
	myProfile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return &QueueResponse{
			Matches: []*domain.MatchCandidate{},
			Message: "Please complete your profile first",
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	actedOn, err := uc.actionRepo.ListTargetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list acted-on users: %w", err)
	}
	excluded := append(actedOn, userID)

	candidates, err := uc.profileRepo.ListCandidates(ctx, excluded, candidateScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	matches := make([]*domain.MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		user, err := uc.userRepo.GetByID(ctx, candidate.UserID)
		if err != nil {
			uc.log.Warn().Str("user_id", candidate.UserID).Err(err).Msg("candidate without user row skipped")
			continue
		}

		matches = append(matches, &domain.MatchCandidate{
			UserID:             candidate.UserID,
			Name:               user.Name,
			Picture:            user.Picture,
			CompatibilityScore: CompatibilityScore(myProfile, candidate),
			Profile:            candidate,
		})
	}

	// Stable sort with an ID tie-break so the same state always yields the
	// same queue order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].CompatibilityScore != matches[j].CompatibilityScore {
			return matches[i].CompatibilityScore > matches[j].CompatibilityScore
		}
		return matches[i].UserID < matches[j].UserID
	})

	if len(matches) > queueSize {
		matches = matches[:queueSize]
	}

	return &QueueResponse{Matches: matches}, nil
}

// RecordAction appends one pass/like decision and reports whether it
// completed a mutual match. Replays for an already-acted-on target are
// ignored idempotently: the stored first action wins and the result is
// computed from stored state, so an identical repeat returns the same answer.
func (uc *MatchUseCase) RecordAction(ctx context.Context, actorID string, req *ActionRequest) (*ActionResult, error) {
	if actorID == req.TargetUserID {
		return nil, domain.ErrCannotMatchSelf
	}

	action := &domain.MatchAction{
		ID:                 uuid.NewString(),
		ActorID:            actorID,
		TargetID:           req.TargetUserID,
		Action:             domain.MatchActionType(req.Action),
		CompatibilityScore: req.CompatibilityScore,
	}

	recorded := action.Action
	err := uc.actionRepo.Create(ctx, action)
	if errors.Is(err, domain.ErrActionAlreadyRecorded) {
		stored, getErr := uc.actionRepo.Get(ctx, actorID, req.TargetUserID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to load recorded action: %w", getErr)
		}
		recorded = stored.Action
		uc.log.Debug().
			Str("actor_id", actorID).
			Str("target_id", req.TargetUserID).
			Msg("duplicate match action ignored")
	} else if err != nil {
		return nil, fmt.Errorf("failed to record action: %w", err)
	}

	result := &ActionResult{}
	if recorded == domain.ActionLike {
		mutual, err := uc.actionRepo.Exists(ctx, req.TargetUserID, actorID, domain.ActionLike)
		if err != nil {
			return nil, fmt.Errorf("failed to check mutual like: %w", err)
		}
		result.MutualMatch = mutual
		if mutual {
			uc.log.Info().
				Str("actor_id", actorID).
				Str("target_id", req.TargetUserID).
				Msg("mutual match established")
		}
	}

	return result, nil
}
