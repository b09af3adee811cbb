package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO profiles (user_id, full_name, email, avatar_url, is_lender, lender_bio, rentals_completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id) DO UPDATE SET
	            full_name = EXCLUDED.full_name,
	            email = EXCLUDED.email,
	            avatar_url = EXCLUDED.avatar_url,
	            is_lender = EXCLUDED.is_lender,
	            lender_bio = EXCLUDED.lender_bio`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.FullName, p.Email, p.AvatarURL, p.IsLender, p.LenderBio, p.RentalsCompleted, p.CreatedAt)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT user_id, full_name, email, COALESCE(avatar_url, ''), is_lender, COALESCE(lender_bio, ''), rentals_completed, created_at
	          FROM profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.AvatarURL, &p.IsLender, &p.LenderBio, &p.RentalsCompleted, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
