package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// memRentalRepo is an in-memory rental store that enforces the same
// conflict and compare-and-swap rules as the database, so booking flows can
// be exercised end to end without a server.
type memRentalRepo struct {
	mu      sync.Mutex
	rentals map[string]*domain.Rental
	blocks  map[string]*domain.AvailabilityBlock // keyed by rental ID
}

func newMemRentalRepo() *memRentalRepo {
	return &memRentalRepo{
		rentals: make(map[string]*domain.Rental),
		blocks:  make(map[string]*domain.AvailabilityBlock),
	}
}

func (m *memRentalRepo) CreateWithBlock(_ context.Context, rental *domain.Rental, block *domain.AvailabilityBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blocks {
		if b.ItemID == block.ItemID && b.Overlaps(block.StartAt, block.EndAt) {
			return domain.ErrDateConflict
		}
	}
	r := *rental
	b := *block
	m.rentals[r.ID] = &r
	m.blocks[r.ID] = &b
	return nil
}

func (m *memRentalRepo) GetByID(_ context.Context, id string) (*domain.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rentals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRentalRepo) UpdateStatus(_ context.Context, rental *domain.Rental, from domain.RentalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rentals[rental.ID]
	if !ok || stored.Status != from {
		return domain.ErrInvalidTransition
	}
	cp := *rental
	m.rentals[rental.ID] = &cp
	return nil
}

func (m *memRentalRepo) CancelWithRelease(_ context.Context, rental *domain.Rental, from domain.RentalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rentals[rental.ID]
	if !ok || stored.Status != from {
		return domain.ErrInvalidTransition
	}
	cp := *rental
	m.rentals[rental.ID] = &cp
	delete(m.blocks, rental.ID)
	return nil
}

func (m *memRentalRepo) ListByRenter(_ context.Context, renterID string, status domain.RentalStatus, _, _ int) ([]domain.Rental, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Rental
	for _, r := range m.rentals {
		if r.RenterID == renterID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRentalRepo) ListByLender(_ context.Context, lenderID string, status domain.RentalStatus, _, _ int) ([]domain.Rental, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Rental
	for _, r := range m.rentals {
		if r.LenderID == lenderID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func newBookingFlowFixture() (*memRentalRepo, service.RentalService) {
	repo := newMemRentalRepo()
	toolRepo := new(MockToolRepo)
	profileRepo := new(MockProfileRepo)
	emailSvc := new(MockEmailService)
	toolRepo.On("GetByID", mock.Anything, "item-1").Return(testItem(), nil)
	profileRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	svc := service.NewRentalService(repo, toolRepo, profileRepo, emailSvc, service.NopEventPublisher{}, 1500, true, nil)
	return repo, svc
}

func day(d int) time.Time {
	return time.Date(2026, 6, d, 10, 0, 0, 0, time.UTC)
}

func TestBookingFlow_OverlapAndAdjacency(t *testing.T) {
	ctx := context.Background()
	_, svc := newBookingFlowFixture()

	_, err := svc.RequestRental(ctx, "renter-a", "item-1", day(10), day(13), "")
	require.NoError(t, err)

	// A range crossing the booked one is rejected and leaves no state.
	_, err = svc.RequestRental(ctx, "renter-b", "item-1", day(12), day(15), "")
	assert.ErrorIs(t, err, domain.ErrDateConflict)

	// Back to back with the booked range is fine: intervals are half-open.
	_, err = svc.RequestRental(ctx, "renter-b", "item-1", day(13), day(16), "")
	assert.NoError(t, err)

	_, total, err := svc.ListRentals(ctx, "renter-b", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestBookingFlow_CancelFreesRange(t *testing.T) {
	ctx := context.Background()
	repo, svc := newBookingFlowFixture()

	first, err := svc.RequestRental(ctx, "renter-a", "item-1", day(10), day(13), "")
	require.NoError(t, err)

	// Occupied while the first booking holds its block.
	_, err = svc.RequestRental(ctx, "renter-c", "item-1", day(10), day(13), "")
	require.ErrorIs(t, err, domain.ErrDateConflict)

	_, err = svc.CancelRental(ctx, "renter-a", first.ID, "plans changed")
	require.NoError(t, err)
	assert.Empty(t, repo.blocks, "cancellation must release the block")

	// The exact same range is bookable again by someone else.
	second, err := svc.RequestRental(ctx, "renter-c", "item-1", day(10), day(13), "")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusPending, second.Status)
}
