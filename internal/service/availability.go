package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type availabilityService struct {
	availRepo repository.AvailabilityRepository
	toolRepo  repository.ToolRepository
}

func NewAvailabilityService(availRepo repository.AvailabilityRepository, toolRepo repository.ToolRepository) AvailabilityService {
	return &availabilityService{availRepo: availRepo, toolRepo: toolRepo}
}

func (s *availabilityService) ListBlocks(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	if err := domain.ValidateRange(from, to); err != nil {
		return nil, err
	}
	return retryRead(ctx, func() ([]domain.AvailabilityBlock, error) {
		return s.availRepo.ListForItem(ctx, itemID, from, to)
	})
}

// CheckAvailability is advisory only: a clear result can go stale before the
// booking lands. The booking transaction re-checks under the item lock.
func (s *availabilityService) CheckAvailability(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return false, err
	}
	overlap, err := retryRead(ctx, func() (bool, error) {
		return s.availRepo.HasOverlap(ctx, itemID, start, end)
	})
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

func (s *availabilityService) CreateManualBlock(ctx context.Context, lenderID, itemID string, start, end time.Time) (*domain.AvailabilityBlock, error) {
	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}
	item, err := s.toolRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.LenderID != lenderID {
		return nil, domain.ErrForbidden
	}

	block := &domain.AvailabilityBlock{
		ID:      uuid.NewString(),
		ItemID:  itemID,
		StartAt: start,
		EndAt:   end,
		Reason:  domain.BlockReasonManual,
	}
	if err := s.availRepo.CreateManual(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *availabilityService) RemoveManualBlock(ctx context.Context, lenderID, blockID string) error {
	block, err := s.availRepo.GetByID(ctx, blockID)
	if err != nil {
		return err
	}
	// Rental-backed blocks are released only through cancellation.
	if block.Reason != domain.BlockReasonManual {
		return domain.ErrForbidden
	}
	item, err := s.toolRepo.GetByID(ctx, block.ItemID)
	if err != nil {
		return err
	}
	if item.LenderID != lenderID {
		return domain.ErrForbidden
	}
	return s.availRepo.Delete(ctx, blockID)
}
