package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/pricing"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) GetQuote(ctx context.Context, itemID string, start, end time.Time) (*pricing.Quote, error) {
	args := m.Called(ctx, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockRentalService) RequestRental(ctx context.Context, renterID, itemID string, start, end time.Time, pickupNotes string) (*domain.Rental, error) {
	args := m.Called(ctx, renterID, itemID, start, end, pickupNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ApproveRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, lenderID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ActivateRental(ctx context.Context, lenderID, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, lenderID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) CompleteRental(ctx context.Context, lenderID, rentalID, returnNotes string) (*domain.Rental, error) {
	args := m.Called(ctx, lenderID, rentalID, returnNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) CancelRental(ctx context.Context, actorID, rentalID, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, actorID, rentalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) DisputeRental(ctx context.Context, lenderID, rentalID, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, lenderID, rentalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ResolveDispute(ctx context.Context, lenderID, rentalID, resolution string, outcome domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, lenderID, rentalID, resolution, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) GetRental(ctx context.Context, userID, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListRentals(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}

func (m *MockRentalService) ListLendings(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, lenderID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}

type MockToolService struct {
	mock.Mock
}

func (m *MockToolService) CreateItem(ctx context.Context, item *domain.ToolItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockToolService) GetItem(ctx context.Context, id string) (*domain.ToolItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolItem), args.Error(1)
}

func (m *MockToolService) UpdateItem(ctx context.Context, lenderID string, item *domain.ToolItem) error {
	args := m.Called(ctx, lenderID, item)
	return args.Error(0)
}

func (m *MockToolService) DeactivateItem(ctx context.Context, lenderID, itemID string) error {
	args := m.Called(ctx, lenderID, itemID)
	return args.Error(0)
}

func (m *MockToolService) ListItems(ctx context.Context, filter domain.ToolFilter) ([]domain.ToolItem, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ToolItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockToolService) ListMyItems(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error) {
	args := m.Called(ctx, lenderID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ToolItem), args.Get(1).(int64), args.Error(2)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) ListBlocks(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, itemID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, itemID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityService) CreateManualBlock(ctx context.Context, lenderID, itemID string, start, end time.Time) (*domain.AvailabilityBlock, error) {
	args := m.Called(ctx, lenderID, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityBlock), args.Error(1)
}

func (m *MockAvailabilityService) RemoveManualBlock(ctx context.Context, lenderID, blockID string) error {
	args := m.Called(ctx, lenderID, blockID)
	return args.Error(0)
}
