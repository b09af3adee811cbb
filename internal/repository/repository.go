package repository

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
)

type ToolRepository interface {
	Create(ctx context.Context, item *domain.ToolItem) error
	GetByID(ctx context.Context, id string) (*domain.ToolItem, error)
	Update(ctx context.Context, item *domain.ToolItem) error
	// Deactivate soft-disables a listing; the row is never deleted.
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ToolFilter) ([]domain.ToolItem, int64, error)
	ListByLender(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error)
	// RefreshStats recomputes total_rentals and avg_rating from rentals
	// and reviews.
	RefreshStats(ctx context.Context, id string) error
}

type RentalRepository interface {
	// CreateWithBlock atomically re-checks availability, inserts the rental
	// in pending state, and inserts its availability block. Returns
	// domain.ErrDateConflict (and persists nothing) when the range overlaps
	// an existing block.
	CreateWithBlock(ctx context.Context, rental *domain.Rental, block *domain.AvailabilityBlock) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// UpdateStatus persists a transition compare-and-swapped on the expected
	// current status; a concurrent change surfaces as
	// domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, rental *domain.Rental, from domain.RentalStatus) error
	// CancelWithRelease performs the cancellation transition and deletes the
	// rental's availability block in one transaction.
	CancelWithRelease(ctx context.Context, rental *domain.Rental, from domain.RentalStatus) error
	ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error)
	ListByLender(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error)
}

type AvailabilityRepository interface {
	ListForItem(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error)
	// HasOverlap is the read-only availability probe. The authoritative
	// check happens again inside the booking transaction.
	HasOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error)
	// CreateManual inserts a lender-placed block, holding the item's row
	// lock while re-checking for overlap.
	CreateManual(ctx context.Context, block *domain.AvailabilityBlock) error
	GetByID(ctx context.Context, id string) (*domain.AvailabilityBlock, error)
	Delete(ctx context.Context, id string) error
	// ReleaseByRental deletes the block tied to a rental. Idempotent:
	// releasing a block that no longer exists is a no-op.
	ReleaseByRental(ctx context.Context, rentalID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.ToolReview) error
	ListByItem(ctx context.Context, itemID string, page, pageSize int) ([]domain.ToolReview, int64, error)
	ExistsForRentalAuthor(ctx context.Context, rentalID, authorID string) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.RentalMessage) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.RentalMessage, error)
	// MarkRead stamps read_at on every message in the rental not sent by
	// readerID.
	MarkRead(ctx context.Context, rentalID, readerID string) error
	UnreadCounts(ctx context.Context, userID string) (map[string]int, error)
}

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}
