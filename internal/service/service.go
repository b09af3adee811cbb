package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/pricing"
)

type RentalService interface {
	// GetQuote prices a candidate range without reserving anything.
	GetQuote(ctx context.Context, itemID string, start, end time.Time) (*pricing.Quote, error)
	// RequestRental books the range atomically: the pending rental and its
	// availability block are created together or not at all.
	RequestRental(ctx context.Context, renterID, itemID string, start, end time.Time, pickupNotes string) (*domain.Rental, error)
	ApproveRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error)
	ActivateRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error)
	CompleteRental(ctx context.Context, lenderID, rentalID, returnNotes string) (*domain.Rental, error)
	CancelRental(ctx context.Context, actorID, rentalID, reason string) (*domain.Rental, error)
	// DisputeRental is open to either participant; resolving is arbitration
	// and restricted to configured admin users.
	DisputeRental(ctx context.Context, actorID, rentalID, reason string) (*domain.Rental, error)
	ResolveDispute(ctx context.Context, arbiterID, rentalID, resolution string, outcome domain.RentalStatus) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error)
	ListLendings(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error)
}

type ToolService interface {
	CreateItem(ctx context.Context, item *domain.ToolItem) error
	GetItem(ctx context.Context, id string) (*domain.ToolItem, error)
	UpdateItem(ctx context.Context, lenderID string, item *domain.ToolItem) error
	DeactivateItem(ctx context.Context, lenderID, itemID string) error
	ListItems(ctx context.Context, filter domain.ToolFilter) ([]domain.ToolItem, int64, error)
	ListMyItems(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error)
}

type AvailabilityService interface {
	// ListBlocks returns the blocks overlapping [from, to) for an item's
	// calendar view.
	ListBlocks(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error)
	CheckAvailability(ctx context.Context, itemID string, start, end time.Time) (bool, error)
	CreateManualBlock(ctx context.Context, lenderID, itemID string, start, end time.Time) (*domain.AvailabilityBlock, error)
	RemoveManualBlock(ctx context.Context, lenderID, blockID string) error
}

type ReviewService interface {
	// CreateReview accepts one review per author per completed rental.
	CreateReview(ctx context.Context, authorID string, review *domain.ToolReview) (*domain.ToolReview, error)
	ListItemReviews(ctx context.Context, itemID string, page, pageSize int) ([]domain.ToolReview, int64, error)
}

type MessageService interface {
	SendMessage(ctx context.Context, senderID, rentalID, body string) (*domain.RentalMessage, error)
	ListMessages(ctx context.Context, userID, rentalID string) ([]domain.RentalMessage, error)
	UnreadCounts(ctx context.Context, userID string) (map[string]int, error)
}

type ProfileService interface {
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type EmailService interface {
	SendRentalRequestNotification(ctx context.Context, lenderEmail, renterName, itemTitle string) error
	SendRentalApprovalNotification(ctx context.Context, renterEmail, itemTitle string) error
	SendRentalCancellationNotification(ctx context.Context, email, itemTitle, reason string) error
	SendRentalCompletionNotification(ctx context.Context, email, itemTitle string) error
	SendReturnReminder(ctx context.Context, renterEmail, itemTitle string, endAt time.Time) error
}

// EventPublisher pushes rental lifecycle and chat events to connected
// clients. Implementations must not block the caller.
type EventPublisher interface {
	PublishRentalEvent(eventType string, rental *domain.Rental)
	PublishMessageEvent(msg *domain.RentalMessage, participants []string)
}

// NopEventPublisher discards events. Used by processes with no connected
// clients, like the cron runner.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishRentalEvent(string, *domain.Rental)           {}
func (NopEventPublisher) PublishMessageEvent(*domain.RentalMessage, []string) {}
