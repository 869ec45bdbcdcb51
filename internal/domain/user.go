package domain

import "time"

// User is the identity issued by the external provider. Immutable once
// created; refreshed only by re-authentication.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Picture   *string   `json:"picture,omitempty" db:"picture"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
