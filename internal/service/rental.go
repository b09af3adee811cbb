package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/pricing"
	"toolshare-backend/internal/repository"
)

var (
	// ErrReasonRequired rejects a dispute opened without saying why.
	ErrReasonRequired = errors.New("a dispute reason is required")
	// ErrResolutionRequired rejects a dispute closed without a resolution
	// note.
	ErrResolutionRequired = errors.New("a resolution note is required")
)

// Event types pushed to connected clients on rental changes.
const (
	EventRentalRequested = "rental.requested"
	EventRentalApproved  = "rental.approved"
	EventRentalActivated = "rental.activated"
	EventRentalCompleted = "rental.completed"
	EventRentalCancelled = "rental.cancelled"
	EventRentalDisputed  = "rental.disputed"
	EventRentalResolved  = "rental.resolved"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	toolRepo    repository.ToolRepository
	profileRepo repository.ProfileRepository
	emailSvc    EmailService
	events      EventPublisher
	feeBps      int64
	showFee     bool
	admins      map[string]bool
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	toolRepo repository.ToolRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
	events EventPublisher,
	feeBps int64,
	showFeeToRenter bool,
	adminUserIDs []string,
) RentalService {
	admins := make(map[string]bool, len(adminUserIDs))
	for _, id := range adminUserIDs {
		admins[id] = true
	}
	return &rentalService{
		rentalRepo:  rentalRepo,
		toolRepo:    toolRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		events:      events,
		feeBps:      feeBps,
		showFee:     showFeeToRenter,
		admins:      admins,
	}
}

func (s *rentalService) GetQuote(ctx context.Context, itemID string, start, end time.Time) (*pricing.Quote, error) {
	item, err := retryRead(ctx, func() (*domain.ToolItem, error) {
		return s.toolRepo.GetByID(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, domain.ErrInactiveItem
	}

	days, err := pricing.RentalDays(start, end)
	if err != nil {
		return nil, err
	}
	if err := pricing.CheckDuration(days, item.MinRentalDays, item.MaxRentalDays); err != nil {
		return nil, err
	}

	return pricing.NewQuote(item.DailyRateCents, item.DepositCents, start, end, s.feeBps, pricing.Options{ShowFee: s.showFee})
}

// RequestRental validates the request and hands the write to the repository
// as one atomic unit. Every validation failure happens before anything is
// persisted, so a rejected request leaves no trace.
func (s *rentalService) RequestRental(ctx context.Context, renterID, itemID string, start, end time.Time, pickupNotes string) (*domain.Rental, error) {
	item, err := s.toolRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, domain.ErrInactiveItem
	}
	if item.LenderID == renterID {
		return nil, domain.ErrOwnItem
	}

	days, err := pricing.RentalDays(start, end)
	if err != nil {
		return nil, err
	}
	if err := pricing.CheckDuration(days, item.MinRentalDays, item.MaxRentalDays); err != nil {
		return nil, err
	}

	quote, err := pricing.NewQuote(item.DailyRateCents, item.DepositCents, start, end, s.feeBps, pricing.Options{ShowFee: s.showFee})
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ID:                uuid.NewString(),
		RenterID:          renterID,
		LenderID:          item.LenderID,
		ItemID:            item.ID,
		Status:            domain.RentalStatusPending,
		StartAt:           start,
		EndAt:             end,
		DailyRateCents:    quote.DailyRateCents,
		DepositCents:      quote.DepositCents,
		SubtotalCents:     quote.SubtotalCents,
		PlatformFeeCents:  quote.PlatformFeeCents,
		TotalCents:        quote.TotalCents,
		LenderPayoutCents: quote.LenderPayoutCents,
		PickupNotes:       pickupNotes,
	}
	rentalID := rental.ID
	block := &domain.AvailabilityBlock{
		ID:       uuid.NewString(),
		ItemID:   item.ID,
		RentalID: &rentalID,
		StartAt:  start,
		EndAt:    end,
		Reason:   domain.BlockReasonRental,
	}

	if err := s.rentalRepo.CreateWithBlock(ctx, rental, block); err != nil {
		return nil, err
	}

	if lender, err := s.profileRepo.GetByUserID(ctx, item.LenderID); err == nil {
		renterName := renterID
		if renter, err := s.profileRepo.GetByUserID(ctx, renterID); err == nil {
			renterName = renter.FullName
		}
		_ = s.emailSvc.SendRentalRequestNotification(ctx, lender.Email, renterName, item.Title)
	}
	s.events.PublishRentalEvent(EventRentalRequested, rental)

	return rental, nil
}

func (s *rentalService) ApproveRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.LenderID != lenderID {
		return nil, domain.ErrForbidden
	}
	from := rental.Status
	if !from.CanTransitionTo(domain.RentalStatusApproved) {
		return nil, domain.ErrInvalidTransition
	}

	rental.Status = domain.RentalStatusApproved
	if err := s.rentalRepo.UpdateStatus(ctx, rental, from); err != nil {
		return nil, err
	}

	if renter, err := s.profileRepo.GetByUserID(ctx, rental.RenterID); err == nil {
		if item, err := s.toolRepo.GetByID(ctx, rental.ItemID); err == nil {
			_ = s.emailSvc.SendRentalApprovalNotification(ctx, renter.Email, item.Title)
		}
	}
	s.events.PublishRentalEvent(EventRentalApproved, rental)

	return rental, nil
}

func (s *rentalService) ActivateRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.LenderID != lenderID {
		return nil, domain.ErrForbidden
	}
	from := rental.Status
	if !from.CanTransitionTo(domain.RentalStatusActive) {
		return nil, domain.ErrInvalidTransition
	}

	rental.Status = domain.RentalStatusActive
	if err := s.rentalRepo.UpdateStatus(ctx, rental, from); err != nil {
		return nil, err
	}
	s.events.PublishRentalEvent(EventRentalActivated, rental)

	return rental, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, lenderID, rentalID, returnNotes string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.LenderID != lenderID {
		return nil, domain.ErrForbidden
	}
	if rental.Status != domain.RentalStatusActive {
		// Disputed rentals complete through dispute resolution, not here.
		return nil, domain.ErrInvalidTransition
	}

	from := rental.Status
	rental.Status = domain.RentalStatusCompleted
	rental.ReturnNotes = returnNotes
	if err := s.rentalRepo.UpdateStatus(ctx, rental, from); err != nil {
		return nil, err
	}

	_ = s.toolRepo.RefreshStats(ctx, rental.ItemID)
	s.notifyCompletion(ctx, rental)
	s.events.PublishRentalEvent(EventRentalCompleted, rental)

	return rental, nil
}

// CancelRental is allowed from any non-terminal, non-disputed state, by
// either participant. The availability block is released in the same
// transaction, so the dates become bookable again the moment the
// cancellation commits.
func (s *rentalService) CancelRental(ctx context.Context, actorID, rentalID, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(actorID) {
		return nil, domain.ErrForbidden
	}
	from := rental.Status
	if from == domain.RentalStatusDisputed {
		return nil, domain.ErrInvalidTransition
	}
	if !from.CanTransitionTo(domain.RentalStatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	rental.Status = domain.RentalStatusCancelled
	rental.CancellationReason = reason
	rental.CancelledAt = &now
	rental.CancelledBy = actorID
	if err := s.rentalRepo.CancelWithRelease(ctx, rental, from); err != nil {
		return nil, err
	}

	otherParty := rental.LenderID
	if actorID == rental.LenderID {
		otherParty = rental.RenterID
	}
	if other, err := s.profileRepo.GetByUserID(ctx, otherParty); err == nil {
		if item, err := s.toolRepo.GetByID(ctx, rental.ItemID); err == nil {
			_ = s.emailSvc.SendRentalCancellationNotification(ctx, other.Email, item.Title, reason)
		}
	}
	s.events.PublishRentalEvent(EventRentalCancelled, rental)

	return rental, nil
}

// DisputeRental flags an active rental. Either participant may open a
// dispute; a reason is mandatory.
func (s *rentalService) DisputeRental(ctx context.Context, actorID, rentalID, reason string) (*domain.Rental, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(actorID) {
		return nil, domain.ErrForbidden
	}
	from := rental.Status
	if !from.CanTransitionTo(domain.RentalStatusDisputed) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	rental.Status = domain.RentalStatusDisputed
	rental.DisputeReason = reason
	rental.DisputeOpenedAt = &now
	if err := s.rentalRepo.UpdateStatus(ctx, rental, from); err != nil {
		return nil, err
	}
	s.events.PublishRentalEvent(EventRentalDisputed, rental)

	return rental, nil
}

// ResolveDispute closes a disputed rental as either completed or cancelled.
// Resolution is arbitration: the parties to the dispute cannot close it
// themselves, only a configured arbitrator can.
func (s *rentalService) ResolveDispute(ctx context.Context, arbiterID, rentalID, resolution string, outcome domain.RentalStatus) (*domain.Rental, error) {
	if outcome != domain.RentalStatusCompleted && outcome != domain.RentalStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}
	if strings.TrimSpace(resolution) == "" {
		return nil, ErrResolutionRequired
	}
	if !s.admins[arbiterID] {
		return nil, domain.ErrForbidden
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	from := rental.Status
	if !from.CanTransitionTo(outcome) || from != domain.RentalStatusDisputed {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	rental.Status = outcome
	rental.DisputeResolvedAt = &now
	rental.DisputeResolution = resolution

	if outcome == domain.RentalStatusCancelled {
		rental.CancelledAt = &now
		rental.CancelledBy = arbiterID
		rental.CancellationReason = resolution
		if err := s.rentalRepo.CancelWithRelease(ctx, rental, from); err != nil {
			return nil, err
		}
	} else {
		if err := s.rentalRepo.UpdateStatus(ctx, rental, from); err != nil {
			return nil, err
		}
		_ = s.toolRepo.RefreshStats(ctx, rental.ItemID)
		s.notifyCompletion(ctx, rental)
	}
	s.events.PublishRentalEvent(EventRentalResolved, rental)

	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID string) (*domain.Rental, error) {
	rental, err := retryRead(ctx, func() (*domain.Rental, error) {
		return s.rentalRepo.GetByID(ctx, rentalID)
	})
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(userID) {
		return nil, domain.ErrForbidden
	}
	return rental, nil
}

type rentalPage struct {
	rentals []domain.Rental
	total   int64
}

func (s *rentalService) ListRentals(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	result, err := retryRead(ctx, func() (rentalPage, error) {
		rentals, total, err := s.rentalRepo.ListByRenter(ctx, renterID, status, page, pageSize)
		return rentalPage{rentals, total}, err
	})
	return result.rentals, result.total, err
}

func (s *rentalService) ListLendings(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	result, err := retryRead(ctx, func() (rentalPage, error) {
		rentals, total, err := s.rentalRepo.ListByLender(ctx, lenderID, status, page, pageSize)
		return rentalPage{rentals, total}, err
	})
	return result.rentals, result.total, err
}

func (s *rentalService) notifyCompletion(ctx context.Context, rental *domain.Rental) {
	item, err := s.toolRepo.GetByID(ctx, rental.ItemID)
	if err != nil {
		return
	}
	for _, userID := range []string{rental.RenterID, rental.LenderID} {
		if p, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
			_ = s.emailSvc.SendRentalCompletionNotification(ctx, p.Email, item.Title)
		}
	}
}
