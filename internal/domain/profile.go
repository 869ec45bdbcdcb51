package domain

import "time"

// TravelStyle is a closed set; free-form values are rejected at the API
// boundary.
type TravelStyle string

const (
	StyleAdventurous TravelStyle = "adventurous"
	StyleRelaxed     TravelStyle = "relaxed"
	StyleCultural    TravelStyle = "cultural"
	StyleLuxury      TravelStyle = "luxury"
	StyleBudget      TravelStyle = "budget"
)

func (s TravelStyle) Valid() bool {
	switch s {
	case StyleAdventurous, StyleRelaxed, StyleCultural, StyleLuxury, StyleBudget:
		return true
	}
	return false
}

type BudgetPreference string

const (
	BudgetLow    BudgetPreference = "low"
	BudgetMedium BudgetPreference = "medium"
	BudgetHigh   BudgetPreference = "high"
)

func (b BudgetPreference) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

type AgeRange string

const (
	Age18To25 AgeRange = "18-25"
	Age26To35 AgeRange = "26-35"
	Age36To45 AgeRange = "36-45"
	Age46Plus AgeRange = "46+"
)

func (a AgeRange) Valid() bool {
	switch a {
	case Age18To25, Age26To35, Age36To45, Age46Plus:
		return true
	}
	return false
}

// Profile holds a user's travel preferences. One profile per user, mutated
// only by its owner.
type Profile struct {
	UserID           string           `json:"user_id" db:"user_id"`
	TravelStyle      TravelStyle      `json:"travel_style" db:"travel_style"`
	BudgetPreference BudgetPreference `json:"budget_preference" db:"budget_preference"`
	AgeRange         AgeRange         `json:"age_range" db:"age_range"`
	Interests        []string         `json:"interests" db:"interests"`
	Bio              *string          `json:"bio" db:"bio"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// DefaultProfile is what a user gets on first access, before they fill
// anything in.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:           userID,
		TravelStyle:      StyleRelaxed,
		BudgetPreference: BudgetMedium,
		AgeRange:         Age26To35,
		Interests:        []string{},
	}
}
