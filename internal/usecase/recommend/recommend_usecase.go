package recommend

import (
	"context"

	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/gemini"
	"github.com/rs/zerolog"
)

const placeholderImageURL = "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/travel_destination.jpg"

type RecommendUseCase struct {
	geminiClient *gemini.GeminiClient
	log          zerolog.Logger
}

func NewRecommendUseCase(geminiClient *gemini.GeminiClient, log zerolog.Logger) *RecommendUseCase {
	return &RecommendUseCase{
		geminiClient: geminiClient,
		log:          log,
	}
}

// RecommendationRequest describes the traveller's constraints
type RecommendationRequest struct {
	Budget           string `json:"budget" binding:"required,oneof=low medium high"`
	StartingLocation string `json:"starting_location" binding:"required"`
	GroupSize        int    `json:"group_size" binding:"required,min=1,max=50"`
	TravelPreference string `json:"travel_preference" binding:"required"`
	Duration         string `json:"duration"`
}

// GetRecommendations returns three destination suggestions. Any model
// failure falls back to the static list; the endpoint never errors on the
// model's behalf.
func (uc *RecommendUseCase) GetRecommendations(ctx context.Context, req *RecommendationRequest) ([]domain.TravelRecommendation, error) {
	duration := req.Duration
	if duration == "" {
		duration = "7 days"
	}

	if uc.geminiClient == nil {
		return fallbackRecommendations(), nil
	}

	recs, err := uc.geminiClient.GenerateRecommendations(
		ctx, req.Budget, req.StartingLocation, req.GroupSize, req.TravelPreference, duration,
	)
	if err != nil {
		uc.log.Warn().Err(err).Msg("recommendation model unavailable, using fallback")
		return fallbackRecommendations(), nil
	}

	for i := range recs {
		if recs[i].ImageURL == "" {
			recs[i].ImageURL = placeholderImageURL
		}
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs, nil
}

func fallbackRecommendations() []domain.TravelRecommendation {
	return []domain.TravelRecommendation{
		{
			DestinationName: "Bali, Indonesia",
			Description:     "A tropical paradise perfect for relaxation and adventure.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/bali.jpg",
			Highlights:      []string{"Beautiful beaches", "Ancient temples", "Rice terraces", "Volcano hiking"},
			EstimatedCost:   "$800-1200 per person",
			BestTimeToVisit: "April to October",
		},
		{
			DestinationName: "Santorini, Greece",
			Description:     "Stunning Greek island with iconic white buildings and blue domes.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/santorini.jpg",
			Highlights:      []string{"Sunset views", "Wine tasting", "Ancient ruins", "Beach clubs"},
			EstimatedCost:   "$1000-1500 per person",
			BestTimeToVisit: "May to October",
		},
		{
			DestinationName: "Kyoto, Japan",
			Description:     "Ancient capital with traditional temples and beautiful gardens.",
			ImageURL:        "https://res.cloudinary.com/dqixczuzs/image/upload/v1/placeholder/kyoto.jpg",
			Highlights:      []string{"Traditional temples", "Cherry blossoms", "Tea ceremonies", "Historic districts"},
			EstimatedCost:   "$900-1300 per person",
			BestTimeToVisit: "March to May, September to November",
		},
	}
}
