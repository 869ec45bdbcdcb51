package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateRecommendations asks the model for exactly three destination
// suggestions matching the traveller's constraints. The response must be a
// JSON array; anything else is an error and the caller falls back to the
// static list.
func (c *GeminiClient) GenerateRecommendations(ctx context.Context, budget, startingLocation string, groupSize int, preference, duration string) ([]domain.TravelRecommendation, error) {
	prompt := fmt.Sprintf(`
		You are a travel expert providing personalized travel recommendations.
		Provide exactly 3 recommendations for these preferences:

		Budget: %s
		Starting Location: %s
		Group Size: %d people
		Travel Preference: %s
		Duration: %s

		Each recommendation must include: destination_name, description
		(2-3 sentences), highlights (3-4 attractions), estimated_cost
		(range matching the budget level), best_time_to_visit.

		Respond only with a JSON array of 3 objects, no additional text.
	`, budget, startingLocation, groupSize, preference, duration)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var recommendations []domain.TravelRecommendation
	if err := json.Unmarshal([]byte(responseText), &recommendations); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	if len(recommendations) == 0 {
		return nil, fmt.Errorf("empty recommendations")
	}

	return recommendations, nil
}
