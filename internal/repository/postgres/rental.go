package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

const rentalColumns = `id, renter_id, lender_id, item_id, status, start_at, end_at, daily_rate_cents, deposit_cents, subtotal_cents, platform_fee_cents, total_cents, lender_payout_cents, COALESCE(pickup_notes, ''), COALESCE(return_notes, ''), COALESCE(cancellation_reason, ''), cancelled_at, COALESCE(cancelled_by, ''), COALESCE(dispute_reason, ''), dispute_opened_at, dispute_resolved_at, COALESCE(dispute_resolution, ''), created_at, updated_at`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// CreateWithBlock is the booking write path. The item row is locked for the
// duration of the transaction so two concurrent bookings for the same item
// serialize; the loser of the race sees the winner's block in the overlap
// re-check and gets ErrDateConflict with nothing persisted.
func (r *rentalRepository) CreateWithBlock(ctx context.Context, rt *domain.Rental, block *domain.AvailabilityBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM tool_items WHERE id = $1 FOR UPDATE`, rt.ItemID).Scan(&itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var conflict bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM availability_blocks WHERE item_id = $1 AND start_at < $3 AND end_at > $2)`,
		rt.ItemID, rt.StartAt, rt.EndAt).Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrDateConflict
	}

	now := time.Now().UTC()
	rt.CreatedAt = now
	rt.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO rentals (id, renter_id, lender_id, item_id, status, start_at, end_at, daily_rate_cents, deposit_cents, subtotal_cents, platform_fee_cents, total_cents, lender_payout_cents, pickup_notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`,
		rt.ID, rt.RenterID, rt.LenderID, rt.ItemID, rt.Status, rt.StartAt, rt.EndAt,
		rt.DailyRateCents, rt.DepositCents, rt.SubtotalCents, rt.PlatformFeeCents,
		rt.TotalCents, rt.LenderPayoutCents, rt.PickupNotes, now)
	if err != nil {
		return err
	}

	block.CreatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO availability_blocks (id, item_id, rental_id, start_at, end_at, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		block.ID, block.ItemID, block.RentalID, block.StartAt, block.EndAt, block.Reason, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.RenterID, &rt.LenderID, &rt.ItemID, &rt.Status, &rt.StartAt, &rt.EndAt,
		&rt.DailyRateCents, &rt.DepositCents, &rt.SubtotalCents, &rt.PlatformFeeCents,
		&rt.TotalCents, &rt.LenderPayoutCents, &rt.PickupNotes, &rt.ReturnNotes,
		&rt.CancellationReason, &rt.CancelledAt, &rt.CancelledBy,
		&rt.DisputeReason, &rt.DisputeOpenedAt, &rt.DisputeResolvedAt, &rt.DisputeResolution,
		&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, query, id))
}

// UpdateStatus writes the transition guarded by the expected current status.
// A zero-row update means another request moved the rental first, which is
// the same condition as an invalid transition from the caller's view.
func (r *rentalRepository) UpdateStatus(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) error {
	rt.UpdatedAt = time.Now().UTC()
	query := `UPDATE rentals SET status=$1, return_notes=$2, dispute_reason=$3, dispute_opened_at=$4, dispute_resolved_at=$5, dispute_resolution=$6, updated_at=$7
	          WHERE id=$8 AND status=$9`
	res, err := r.db.ExecContext(ctx, query,
		rt.Status, rt.ReturnNotes, rt.DisputeReason, rt.DisputeOpenedAt,
		rt.DisputeResolvedAt, rt.DisputeResolution, rt.UpdatedAt, rt.ID, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// CancelWithRelease moves the rental to cancelled and removes its block in
// one transaction, so there is never a cancelled rental whose block still
// exists.
func (r *rentalRepository) CancelWithRelease(ctx context.Context, rt *domain.Rental, from domain.RentalStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rt.UpdatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status=$1, cancellation_reason=$2, cancelled_at=$3, cancelled_by=$4, dispute_resolved_at=$5, dispute_resolution=$6, updated_at=$7
		 WHERE id=$8 AND status=$9`,
		rt.Status, rt.CancellationReason, rt.CancelledAt, rt.CancelledBy,
		rt.DisputeResolvedAt, rt.DisputeResolution, rt.UpdatedAt, rt.ID, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	if err := releaseBlocksByRental(ctx, tx, rt.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *rentalRepository) ListByLender(ctx context.Context, lenderID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	return r.list(ctx, "lender_id", lenderID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, column, userID string, status domain.RentalStatus, page, pageSize int) ([]domain.Rental, int64, error) {
	base := fmt.Sprintf(`FROM rentals WHERE %s = $1`, column)
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + rentalColumns + " " + base +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}
