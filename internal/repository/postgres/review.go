package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.ToolReview) error {
	rv.CreatedAt = time.Now().UTC()
	query := `INSERT INTO tool_reviews (id, rental_id, author_id, subject_id, item_id, reviewer_role, overall_rating, condition_rating, communication_rating, body, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.RentalID, rv.AuthorID, rv.SubjectID, rv.ItemID, rv.ReviewerRole,
		rv.OverallRating, rv.ConditionRating, rv.CommunicationRating, rv.Body, rv.CreatedAt)
	return err
}

func (r *reviewRepository) ListByItem(ctx context.Context, itemID string, page, pageSize int) ([]domain.ToolReview, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tool_reviews WHERE item_id = $1`, itemID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, rental_id, author_id, subject_id, item_id, reviewer_role, overall_rating, condition_rating, communication_rating, COALESCE(body, ''), created_at
	          FROM tool_reviews WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, itemID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.ToolReview
	for rows.Next() {
		var rv domain.ToolReview
		if err := rows.Scan(&rv.ID, &rv.RentalID, &rv.AuthorID, &rv.SubjectID, &rv.ItemID, &rv.ReviewerRole,
			&rv.OverallRating, &rv.ConditionRating, &rv.CommunicationRating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}

func (r *reviewRepository) ExistsForRentalAuthor(ctx context.Context, rentalID, authorID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tool_reviews WHERE rental_id = $1 AND author_id = $2)`,
		rentalID, authorID).Scan(&exists)
	return exists, err
}
