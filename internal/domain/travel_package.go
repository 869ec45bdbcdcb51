package domain

import "time"

// TravelPackage is a curated catalog entry. Display-only collaborator data,
// no state machine behind it.
type TravelPackage struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Destinations []string  `json:"destinations" db:"destinations"`
	Price        float64   `json:"price" db:"price"`
	Duration     string    `json:"duration" db:"duration"`
	Images       []string  `json:"images" db:"images"`
	Highlights   []string  `json:"highlights" db:"highlights"`
	Category     string    `json:"category" db:"category"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TravelRecommendation is a generated suggestion, not a stored entity.
type TravelRecommendation struct {
	DestinationName string   `json:"destination_name"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url"`
	Highlights      []string `json:"highlights"`
	EstimatedCost   string   `json:"estimated_cost"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
}
