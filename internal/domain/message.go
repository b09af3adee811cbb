package domain

import "time"

// RentalMessage is a chat message between the two parties of a rental.
type RentalMessage struct {
	ID        string     `json:"id"`
	RentalID  string     `json:"rental_id"`
	SenderID  string     `json:"sender_id"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
