package domain

import (
	"errors"
	"time"
)

type ReviewerRole string

const (
	ReviewerRoleRenter ReviewerRole = "renter"
	ReviewerRoleLender ReviewerRole = "lender"
)

// ToolReview is feedback left by one rental party about the other, tied to
// a completed rental. One review per (rental, author).
type ToolReview struct {
	ID                  string       `json:"id"`
	RentalID            string       `json:"rental_id"`
	AuthorID            string       `json:"author_id"`
	SubjectID           string       `json:"subject_id"`
	ItemID              string       `json:"item_id"`
	ReviewerRole        ReviewerRole `json:"reviewer_role"`
	OverallRating       int          `json:"overall_rating"`
	ConditionRating     *int         `json:"condition_rating,omitempty"`
	CommunicationRating *int         `json:"communication_rating,omitempty"`
	Body                string       `json:"body"`
	CreatedAt           time.Time    `json:"created_at"`
}

func (r *ToolReview) Validate() error {
	if r.OverallRating < 1 || r.OverallRating > 5 {
		return errors.New("overall rating must be between 1 and 5")
	}
	for _, opt := range []*int{r.ConditionRating, r.CommunicationRating} {
		if opt != nil && (*opt < 1 || *opt > 5) {
			return errors.New("ratings must be between 1 and 5")
		}
	}
	return nil
}
