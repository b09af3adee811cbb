package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.RentalMessage) error {
	m.CreatedAt = time.Now().UTC()
	query := `INSERT INTO rental_messages (id, rental_id, sender_id, body, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.RentalID, m.SenderID, m.Body, m.CreatedAt)
	return err
}

func (r *messageRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.RentalMessage, error) {
	query := `SELECT id, rental_id, sender_id, body, read_at, created_at
	          FROM rental_messages WHERE rental_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.RentalMessage
	for rows.Next() {
		var m domain.RentalMessage
		if err := rows.Scan(&m.ID, &m.RentalID, &m.SenderID, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, rentalID, readerID string) error {
	query := `UPDATE rental_messages SET read_at = $3
	          WHERE rental_id = $1 AND sender_id <> $2 AND read_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, rentalID, readerID, time.Now().UTC())
	return err
}

// UnreadCounts returns, per rental the user participates in, the number of
// unread messages sent by the other party.
func (r *messageRepository) UnreadCounts(ctx context.Context, userID string) (map[string]int, error) {
	query := `SELECT m.rental_id, count(*)
	          FROM rental_messages m
	          JOIN rentals rt ON rt.id = m.rental_id
	          WHERE (rt.renter_id = $1 OR rt.lender_id = $1)
	            AND m.sender_id <> $1 AND m.read_at IS NULL
	          GROUP BY m.rental_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rentalID string
		var n int
		if err := rows.Scan(&rentalID, &n); err != nil {
			return nil, err
		}
		counts[rentalID] = n
	}
	return counts, rows.Err()
}
