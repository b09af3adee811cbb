package domain

import (
	"errors"
	"time"
)

type BlockReason string

const (
	// BlockReasonRental marks a block created alongside a rental.
	BlockReasonRental BlockReason = "rental"
	// BlockReasonManual marks a block the lender placed by hand.
	BlockReasonManual BlockReason = "manual"
)

// AvailabilityBlock marks an item unbookable for the half-open interval
// [StartAt, EndAt). RentalID is set only for rental-backed blocks; it is the
// handle used to release the block when the rental is cancelled.
type AvailabilityBlock struct {
	ID        string      `json:"id"`
	ItemID    string      `json:"item_id"`
	RentalID  *string     `json:"rental_id,omitempty"`
	StartAt   time.Time   `json:"start_at"`
	EndAt     time.Time   `json:"end_at"`
	Reason    BlockReason `json:"reason"`
	CreatedAt time.Time   `json:"created_at"`
}

var ErrInvalidRange = errors.New("end must be after start")

// ValidateRange checks the half-open interval invariant end > start.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps applies the half-open overlap test: a block ending exactly when
// another range starts does not conflict with it.
func (b *AvailabilityBlock) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}
