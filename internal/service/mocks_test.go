package service_test

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithBlock(ctx context.Context, rental *domain.Rental, block *domain.AvailabilityBlock) error {
	args := m.Called(ctx, rental, block)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) UpdateStatus(ctx context.Context, rental *domain.Rental, from domain.RentalStatus) error {
	args := m.Called(ctx, rental, from)
	return args.Error(0)
}
func (m *MockRentalRepo) CancelWithRelease(ctx context.Context, rental *domain.Rental, from domain.RentalStatus) error {
	args := m.Called(ctx, rental, from)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) ListByLender(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, lenderID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, item *domain.ToolItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockToolRepo) GetByID(ctx context.Context, id string) (*domain.ToolItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolItem), args.Error(1)
}
func (m *MockToolRepo) Update(ctx context.Context, item *domain.ToolItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockToolRepo) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockToolRepo) List(ctx context.Context, filter domain.ToolFilter) ([]domain.ToolItem, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ToolItem), args.Get(1).(int64), args.Error(2)
}
func (m *MockToolRepo) ListByLender(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error) {
	args := m.Called(ctx, lenderID, page, pageSize)
	return args.Get(0).([]domain.ToolItem), args.Get(1).(int64), args.Error(2)
}
func (m *MockToolRepo) RefreshStats(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) ListForItem(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, itemID, from, to)
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}
func (m *MockAvailabilityRepo) HasOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, itemID, start, end)
	return args.Bool(0), args.Error(1)
}
func (m *MockAvailabilityRepo) CreateManual(ctx context.Context, block *domain.AvailabilityBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) GetByID(ctx context.Context, id string) (*domain.AvailabilityBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityBlock), args.Error(1)
}
func (m *MockAvailabilityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) ReleaseByRental(ctx context.Context, rentalID string) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.ToolReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByItem(ctx context.Context, itemID string, page, pageSize int) ([]domain.ToolReview, int64, error) {
	args := m.Called(ctx, itemID, page, pageSize)
	return args.Get(0).([]domain.ToolReview), args.Get(1).(int64), args.Error(2)
}
func (m *MockReviewRepo) ExistsForRentalAuthor(ctx context.Context, rentalID, authorID string) (bool, error) {
	args := m.Called(ctx, rentalID, authorID)
	return args.Bool(0), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.RentalMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByRental(ctx context.Context, rentalID string) ([]domain.RentalMessage, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalMessage), args.Error(1)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, rentalID, readerID string) error {
	args := m.Called(ctx, rentalID, readerID)
	return args.Error(0)
}
func (m *MockMessageRepo) UnreadCounts(ctx context.Context, userID string) (map[string]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalRequestNotification(ctx context.Context, lenderEmail, renterName, itemTitle string) error {
	args := m.Called(ctx, lenderEmail, renterName, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, itemTitle string) error {
	args := m.Called(ctx, renterEmail, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCancellationNotification(ctx context.Context, email, itemTitle, reason string) error {
	args := m.Called(ctx, email, itemTitle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCompletionNotification(ctx context.Context, email, itemTitle string) error {
	args := m.Called(ctx, email, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, renterEmail, itemTitle string, endAt time.Time) error {
	args := m.Called(ctx, renterEmail, itemTitle, endAt)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishRentalEvent(eventType string, rental *domain.Rental) {
	m.Called(eventType, rental)
}
func (m *MockEventPublisher) PublishMessageEvent(msg *domain.RentalMessage, participants []string) {
	m.Called(msg, participants)
}
