package domain

import "time"

// Profile holds the marketplace-facing identity for a user. Account
// creation and credentials live with the hosted identity provider; this
// backend only stores what it needs for display and notifications.
type Profile struct {
	UserID           string    `json:"user_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	AvatarURL        string    `json:"avatar_url"`
	IsLender         bool      `json:"is_lender"`
	LenderBio        string    `json:"lender_bio"`
	RentalsCompleted int       `json:"rentals_completed"`
	CreatedAt        time.Time `json:"created_at"`
}
