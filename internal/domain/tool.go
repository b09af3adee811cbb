package domain

import (
	"errors"
	"time"
)

type ToolCategory string

const (
	ToolCategoryPowerTools   ToolCategory = "power_tools"
	ToolCategoryHandTools    ToolCategory = "hand_tools"
	ToolCategoryGarden       ToolCategory = "garden"
	ToolCategoryConstruction ToolCategory = "construction"
	ToolCategoryAutomotive   ToolCategory = "automotive"
	ToolCategoryCleaning     ToolCategory = "cleaning"
	ToolCategoryMeasuring    ToolCategory = "measuring"
	ToolCategoryLadders      ToolCategory = "ladders"
	ToolCategoryOther        ToolCategory = "other"
)

// ToolCategories lists every valid category, in display order.
var ToolCategories = []ToolCategory{
	ToolCategoryPowerTools,
	ToolCategoryHandTools,
	ToolCategoryGarden,
	ToolCategoryConstruction,
	ToolCategoryAutomotive,
	ToolCategoryCleaning,
	ToolCategoryMeasuring,
	ToolCategoryLadders,
	ToolCategoryOther,
}

func (c ToolCategory) Valid() bool {
	for _, known := range ToolCategories {
		if c == known {
			return true
		}
	}
	return false
}

type ToolCondition string

const (
	ToolConditionLikeNew ToolCondition = "like_new"
	ToolConditionGood    ToolCondition = "good"
	ToolConditionFair    ToolCondition = "fair"
)

func (c ToolCondition) Valid() bool {
	switch c {
	case ToolConditionLikeNew, ToolConditionGood, ToolConditionFair:
		return true
	}
	return false
}

// ToolItem is a lendable asset. Items are soft-deactivated, never deleted,
// so historical rentals keep a valid item reference.
type ToolItem struct {
	ID             string        `json:"id"`
	LenderID       string        `json:"lender_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Category       ToolCategory  `json:"category"`
	Brand          string        `json:"brand"`
	ModelNumber    string        `json:"model_number"`
	Condition      ToolCondition `json:"condition"`
	DailyRateCents int64         `json:"daily_rate_cents"`
	DepositCents   int64         `json:"deposit_cents"`
	MinRentalDays  int           `json:"min_rental_days"`
	MaxRentalDays  int           `json:"max_rental_days"`
	LocationCity   string        `json:"location_city"`
	LocationState  string        `json:"location_state"`
	IsActive       bool          `json:"is_active"`
	Images         []string      `json:"images"`
	Tags           []string      `json:"tags"`
	TotalRentals   int           `json:"total_rentals"`
	AvgRating      *float64      `json:"avg_rating,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Validate checks the listing invariants: a positive daily rate, a
// non-negative deposit, and a sane rental-length window.
func (t *ToolItem) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if !t.Category.Valid() {
		return errors.New("unknown category")
	}
	if !t.Condition.Valid() {
		return errors.New("unknown condition")
	}
	if t.DailyRateCents <= 0 {
		return errors.New("daily rate must be positive")
	}
	if t.DepositCents < 0 {
		return errors.New("deposit cannot be negative")
	}
	if t.MinRentalDays < 1 {
		return errors.New("minimum rental length must be at least 1 day")
	}
	if t.MaxRentalDays < t.MinRentalDays {
		return errors.New("maximum rental length must be >= minimum")
	}
	return nil
}

// ToolFilter narrows item listings. Zero values mean "no constraint".
type ToolFilter struct {
	Query        string
	Category     ToolCategory
	Condition    ToolCondition
	MaxRateCents int64
	City         string
	State        string
	Page         int
	PageSize     int
}
