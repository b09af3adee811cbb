package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

const toolColumns = `id, lender_id, title, COALESCE(description, ''), category, COALESCE(brand, ''), COALESCE(model_number, ''), condition, daily_rate_cents, deposit_cents, min_rental_days, max_rental_days, COALESCE(location_city, ''), COALESCE(location_state, ''), is_active, images, tags, total_rentals, avg_rating, created_at, updated_at`

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(ctx context.Context, t *domain.ToolItem) error {
	query := `INSERT INTO tool_items (id, lender_id, title, description, category, brand, model_number, condition, daily_rate_cents, deposit_cents, min_rental_days, max_rental_days, location_city, location_state, is_active, images, tags, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.LenderID, t.Title, t.Description, t.Category, t.Brand, t.ModelNumber, t.Condition,
		t.DailyRateCents, t.DepositCents, t.MinRentalDays, t.MaxRentalDays,
		t.LocationCity, t.LocationState, t.IsActive, pq.Array(t.Images), pq.Array(t.Tags), now)
	return err
}

func scanTool(row interface{ Scan(...any) error }) (*domain.ToolItem, error) {
	t := &domain.ToolItem{}
	err := row.Scan(&t.ID, &t.LenderID, &t.Title, &t.Description, &t.Category, &t.Brand, &t.ModelNumber,
		&t.Condition, &t.DailyRateCents, &t.DepositCents, &t.MinRentalDays, &t.MaxRentalDays,
		&t.LocationCity, &t.LocationState, &t.IsActive, pq.Array(&t.Images), pq.Array(&t.Tags),
		&t.TotalRentals, &t.AvgRating, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) GetByID(ctx context.Context, id string) (*domain.ToolItem, error) {
	query := `SELECT ` + toolColumns + ` FROM tool_items WHERE id = $1`
	return scanTool(r.db.QueryRowContext(ctx, query, id))
}

func (r *toolRepository) Update(ctx context.Context, t *domain.ToolItem) error {
	query := `UPDATE tool_items SET title=$2, description=$3, category=$4, brand=$5, model_number=$6, condition=$7, daily_rate_cents=$8, deposit_cents=$9, min_rental_days=$10, max_rental_days=$11, location_city=$12, location_state=$13, is_active=$14, images=$15, tags=$16, updated_at=$17
	          WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Category, t.Brand, t.ModelNumber, t.Condition,
		t.DailyRateCents, t.DepositCents, t.MinRentalDays, t.MaxRentalDays,
		t.LocationCity, t.LocationState, t.IsActive, pq.Array(t.Images), pq.Array(t.Tags), time.Now().UTC())
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

func (r *toolRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE tool_items SET is_active = false, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
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

func (r *toolRepository) List(ctx context.Context, f domain.ToolFilter) ([]domain.ToolItem, int64, error) {
	base := `FROM tool_items WHERE is_active = true`
	args := []interface{}{}
	argIdx := 1

	if f.Query != "" {
		base += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if f.Category != "" {
		base += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.Condition != "" {
		base += fmt.Sprintf(" AND condition = $%d", argIdx)
		args = append(args, f.Condition)
		argIdx++
	}
	if f.MaxRateCents > 0 {
		base += fmt.Sprintf(" AND daily_rate_cents <= $%d", argIdx)
		args = append(args, f.MaxRateCents)
		argIdx++
	}
	if f.City != "" {
		base += fmt.Sprintf(" AND location_city ILIKE $%d", argIdx)
		args = append(args, f.City)
		argIdx++
	}
	if f.State != "" {
		base += fmt.Sprintf(" AND location_state ILIKE $%d", argIdx)
		args = append(args, f.State)
		argIdx++
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + toolColumns + " " + base +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.ToolItem
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *t)
	}
	return items, count, rows.Err()
}

func (r *toolRepository) ListByLender(ctx context.Context, lenderID string, page, pageSize int) ([]domain.ToolItem, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tool_items WHERE lender_id = $1`, lenderID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + toolColumns + ` FROM tool_items WHERE lender_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, lenderID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.ToolItem
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *t)
	}
	return items, count, rows.Err()
}

func (r *toolRepository) RefreshStats(ctx context.Context, id string) error {
	query := `UPDATE tool_items SET
	            total_rentals = (SELECT count(*) FROM rentals WHERE item_id = $1 AND status = 'completed'),
	            avg_rating = (SELECT avg(overall_rating) FROM tool_reviews WHERE item_id = $1),
	            updated_at = $2
	          WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	return err
}
