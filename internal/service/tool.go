package service

import (
	"context"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolService struct {
	toolRepo repository.ToolRepository
}

func NewToolService(toolRepo repository.ToolRepository) ToolService {
	return &toolService{toolRepo: toolRepo}
}

func (s *toolService) CreateItem(ctx context.Context, item *domain.ToolItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.IsActive = true
	return s.toolRepo.Create(ctx, item)
}

func (s *toolService) GetItem(ctx context.Context, id string) (*domain.ToolItem, error) {
	return retryRead(ctx, func() (*domain.ToolItem, error) {
		return s.toolRepo.GetByID(ctx, id)
	})
}

func (s *toolService) UpdateItem(ctx context.Context, lenderID string, item *domain.ToolItem) error {
	existing, err := s.toolRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing.LenderID != lenderID {
		return domain.ErrForbidden
	}
	if err := item.Validate(); err != nil {
		return err
	}
	// Rate changes never touch existing rentals; their pricing was
	// snapshotted at booking time.
	item.LenderID = existing.LenderID
	return s.toolRepo.Update(ctx, item)
}

func (s *toolService) DeactivateItem(ctx context.Context, lenderID, itemID string) error {
	existing, err := s.toolRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.LenderID != lenderID {
		return domain.ErrForbidden
	}
	return s.toolRepo.Deactivate(ctx, itemID)
}

type toolPage struct {
	items []domain.ToolItem
	total int64
}

func (s *toolService) ListItems(ctx context.Context, filter domain.ToolFilter) ([]domain.ToolItem, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	result, err := retryRead(ctx, func() (toolPage, error) {
		items, total, err := s.toolRepo.List(ctx, filter)
		return toolPage{items, total}, err
	})
	return result.items, result.total, err
}

func (s *toolService) ListMyItems(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error) {
	result, err := retryRead(ctx, func() (toolPage, error) {
		items, total, err := s.toolRepo.ListByLender(ctx, lenderID, page, pageSize)
		return toolPage{items, total}, err
	})
	return result.items, result.total, err
}
