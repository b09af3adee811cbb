package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

var ErrDuplicateReview = errors.New("review already submitted for this rental")

type reviewService struct {
	reviewRepo repository.ReviewRepository
	rentalRepo repository.RentalRepository
	toolRepo   repository.ToolRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, rentalRepo repository.RentalRepository, toolRepo repository.ToolRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, rentalRepo: rentalRepo, toolRepo: toolRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, authorID string, review *domain.ToolReview) (*domain.ToolReview, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}

	rental, err := s.rentalRepo.GetByID(ctx, review.RentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(authorID) {
		return nil, domain.ErrForbidden
	}
	if rental.Status != domain.RentalStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	exists, err := s.reviewRepo.ExistsForRentalAuthor(ctx, rental.ID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review.ID = uuid.NewString()
	review.AuthorID = authorID
	review.ItemID = rental.ItemID
	if authorID == rental.RenterID {
		review.ReviewerRole = domain.ReviewerRoleRenter
		review.SubjectID = rental.LenderID
	} else {
		review.ReviewerRole = domain.ReviewerRoleLender
		review.SubjectID = rental.RenterID
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	_ = s.toolRepo.RefreshStats(ctx, rental.ItemID)

	return review, nil
}

type reviewPage struct {
	reviews []domain.ToolReview
	total   int64
}

func (s *reviewService) ListItemReviews(ctx context.Context, itemID string, page, pageSize int) ([]domain.ToolReview, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	result, err := retryRead(ctx, func() (reviewPage, error) {
		reviews, total, err := s.reviewRepo.ListByItem(ctx, itemID, page, pageSize)
		return reviewPage{reviews, total}, err
	})
	return result.reviews, result.total, err
}
