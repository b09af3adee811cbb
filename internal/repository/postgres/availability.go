package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

const blockColumns = `id, item_id, rental_id, start_at, end_at, reason, created_at`

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func scanBlock(row interface{ Scan(...any) error }) (*domain.AvailabilityBlock, error) {
	b := &domain.AvailabilityBlock{}
	err := row.Scan(&b.ID, &b.ItemID, &b.RentalID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *availabilityRepository) ListForItem(ctx context.Context, itemID string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM availability_blocks
	          WHERE item_id = $1 AND start_at < $3 AND end_at > $2
	          ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, itemID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.AvailabilityBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}
	return blocks, rows.Err()
}

func (r *availabilityRepository) HasOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	var overlap bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM availability_blocks WHERE item_id = $1 AND start_at < $3 AND end_at > $2)`,
		itemID, start, end).Scan(&overlap)
	return overlap, err
}

// CreateManual mirrors the booking write path: lock the item row, re-check
// for overlap, insert. Manual blocks compete with rentals for the same
// calendar, so they go through the same race protection.
func (r *availabilityRepository) CreateManual(ctx context.Context, block *domain.AvailabilityBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM tool_items WHERE id = $1 FOR UPDATE`, block.ItemID).Scan(&itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var conflict bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM availability_blocks WHERE item_id = $1 AND start_at < $3 AND end_at > $2)`,
		block.ItemID, block.StartAt, block.EndAt).Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrDateConflict
	}

	block.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO availability_blocks (id, item_id, rental_id, start_at, end_at, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		block.ID, block.ItemID, block.RentalID, block.StartAt, block.EndAt, block.Reason, block.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *availabilityRepository) GetByID(ctx context.Context, id string) (*domain.AvailabilityBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM availability_blocks WHERE id = $1`
	return scanBlock(r.db.QueryRowContext(ctx, query, id))
}

func (r *availabilityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability_blocks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *availabilityRepository) ReleaseByRental(ctx context.Context, rentalID string) error {
	return releaseBlocksByRental(ctx, r.db, rentalID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// releaseBlocksByRental frees a rental's dates. Shared between the
// standalone release and the cancellation transaction, and idempotent by
// construction: deleting zero rows is fine.
func releaseBlocksByRental(ctx context.Context, e execer, rentalID string) error {
	_, err := e.ExecContext(ctx, `DELETE FROM availability_blocks WHERE rental_id = $1`, rentalID)
	return err
}
