package match

import "github.com/manzafir/manzafir-backend/internal/domain"

// Scoring weights. The numbers are the product's tuning, not a law of nature;
// callers treat the result as an opaque 0-100 value.
const (
	baseScore         = 50
	sameStyleBonus    = 20
	sameBudgetBonus   = 15
	perCommonInterest = 5
	maxScore          = 100
)

// CompatibilityScore rates how well two travel profiles fit together.
func CompatibilityScore(me, candidate *domain.Profile) int {
	score := baseScore

	if candidate.TravelStyle == me.TravelStyle {
		score += sameStyleBonus
	}

	mine := make(map[string]struct{}, len(me.Interests))
	for _, interest := range me.Interests {
		mine[interest] = struct{}{}
	}
	for _, interest := range candidate.Interests {
		if _, ok := mine[interest]; ok {
			score += perCommonInterest
		}
	}

	if candidate.BudgetPreference == me.BudgetPreference {
		score += sameBudgetBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
