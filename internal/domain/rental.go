package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusApproved  RentalStatus = "approved"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusDisputed  RentalStatus = "disputed"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusApproved, RentalStatusActive,
		RentalStatusCompleted, RentalStatusCancelled, RentalStatusDisputed:
		return true
	}
	return false
}

// rentalTransitions is the full lifecycle graph. A transition absent from
// this table is rejected, so a rental can never skip a state (e.g. a renter
// cannot self-activate a pending request).
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:   {RentalStatusApproved, RentalStatusCancelled},
	RentalStatusApproved:  {RentalStatusActive, RentalStatusCancelled},
	RentalStatusActive:    {RentalStatusCompleted, RentalStatusDisputed, RentalStatusCancelled},
	RentalStatusDisputed:  {RentalStatusCompleted, RentalStatusCancelled},
	RentalStatusCompleted: nil,
	RentalStatusCancelled: nil,
}

// CanTransitionTo reports whether the lifecycle graph allows moving from s
// to next.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

// Rental is a booking of one item by one renter for a half-open date range
// [StartAt, EndAt). The pricing fields are a snapshot captured at booking
// time; they never change afterwards, even if the item's live rate does.
type Rental struct {
	ID       string       `json:"id"`
	RenterID string       `json:"renter_id"`
	LenderID string       `json:"lender_id"`
	ItemID   string       `json:"item_id"`
	Status   RentalStatus `json:"status"`
	StartAt  time.Time    `json:"start_at"`
	EndAt    time.Time    `json:"end_at"`

	DailyRateCents    int64 `json:"daily_rate_cents"`
	DepositCents      int64 `json:"deposit_cents"`
	SubtotalCents     int64 `json:"subtotal_cents"`
	PlatformFeeCents  int64 `json:"platform_fee_cents"`
	TotalCents        int64 `json:"total_cents"`
	LenderPayoutCents int64 `json:"lender_payout_cents"`

	PickupNotes string `json:"pickup_notes"`
	ReturnNotes string `json:"return_notes"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        string     `json:"cancelled_by,omitempty"`

	DisputeReason     string     `json:"dispute_reason,omitempty"`
	DisputeOpenedAt   *time.Time `json:"dispute_opened_at,omitempty"`
	DisputeResolvedAt *time.Time `json:"dispute_resolved_at,omitempty"`
	DisputeResolution string     `json:"dispute_resolution,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsParticipant reports whether userID is the renter or the lender.
func (r *Rental) IsParticipant(userID string) bool {
	return r.RenterID == userID || r.LenderID == userID
}

// HoldsBlock reports whether a rental in this status is expected to have an
// availability block on the item. Cancelled rentals must not hold one;
// everything pre-cancellation must.
func (s RentalStatus) HoldsBlock() bool {
	return s != RentalStatusCancelled
}
