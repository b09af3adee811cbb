// Package pricing computes rental cost breakdowns. Everything here is a
// pure function over integer cents; callers snapshot the result onto the
// rental at booking time.
package pricing

import (
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
)

// DefaultPlatformFeeBps is the marketplace's cut of the rental subtotal,
// in basis points.
const DefaultPlatformFeeBps = 1500

const day = 24 * time.Hour

// RentalDays returns the number of billable days for the half-open range
// [start, end): the calendar-day span rounded up, minimum 1.
func RentalDays(start, end time.Time) (int, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return 0, err
	}
	d := end.Sub(start)
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// PlatformFee applies the fee rate to a subtotal, rounding half-up on the
// cent boundary so no fractional cents ever appear.
func PlatformFee(subtotalCents, feeBps int64) int64 {
	return (subtotalCents*feeBps + 5000) / 10000
}

type LineItem struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

// Quote is an ephemeral price computation for a candidate date range. It has
// no identity and is recomputed whenever the dates change.
type Quote struct {
	TotalDays         int        `json:"total_days"`
	DailyRateCents    int64      `json:"daily_rate_cents"`
	SubtotalCents     int64      `json:"subtotal_cents"`
	PlatformFeeCents  int64      `json:"platform_fee_cents"`
	LenderPayoutCents int64      `json:"lender_payout_cents"`
	DepositCents      int64      `json:"deposit_cents"`
	TotalCents        int64      `json:"total_cents"`
	LineItems         []LineItem `json:"line_items"`
}

// Options adjust presentation, never amounts.
type Options struct {
	// ShowFee controls whether the platform-fee line item appears in the
	// renter-facing breakdown. The fee is charged either way.
	ShowFee bool
}

// NewQuote computes the full breakdown for renting at dailyRateCents per day
// over [start, end) with the given deposit and fee rate.
//
// The lender payout is derived by subtraction from the subtotal so that
// PlatformFeeCents + LenderPayoutCents == SubtotalCents holds exactly.
func NewQuote(dailyRateCents, depositCents int64, start, end time.Time, feeBps int64, opts Options) (*Quote, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	subtotal := dailyRateCents * int64(days)
	fee := PlatformFee(subtotal, feeBps)
	payout := subtotal - fee
	total := subtotal + depositCents

	q := &Quote{
		TotalDays:         days,
		DailyRateCents:    dailyRateCents,
		SubtotalCents:     subtotal,
		PlatformFeeCents:  fee,
		LenderPayoutCents: payout,
		DepositCents:      depositCents,
		TotalCents:        total,
	}

	q.LineItems = append(q.LineItems, LineItem{
		Label:       fmt.Sprintf("Daily rate × %d days", days),
		AmountCents: subtotal,
	})
	if opts.ShowFee {
		q.LineItems = append(q.LineItems, LineItem{Label: "Platform fee", AmountCents: fee})
	}
	if depositCents > 0 {
		q.LineItems = append(q.LineItems, LineItem{Label: "Security deposit", AmountCents: depositCents})
	}

	return q, nil
}

// CheckDuration validates a day count against an item's rental-length
// bounds.
func CheckDuration(days, minDays, maxDays int) error {
	if days < minDays || days > maxDays {
		return domain.ErrInvalidDuration
	}
	return nil
}
