package jobs

import (
	"context"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
)

// ExpiredByActor marks cancellations performed by the expiry job rather
// than a user.
const ExpiredByActor = "system"

// ExpireStalePendingRequests cancels rental requests the lender never acted
// on, either because they sat pending past the configured expiry or because
// their start date has already passed. Each rental goes through the same
// cancel-and-release transaction as a user cancellation, so its block is
// always freed atomically; a rental approved between the scan and the
// cancellation fails the status check and is skipped.
func (jr *JobRunner) ExpireStalePendingRequests() {
	jr.runWithRecovery("ExpireStalePendingRequests", func() {
		expiryHours := jr.config.Booking.PendingExpiryHours
		if expiryHours <= 0 {
			return
		}

		ctx := context.Background()
		now := time.Now().UTC()
		cutoff := now.Add(-time.Duration(expiryHours) * time.Hour)

		rows, err := jr.db.QueryContext(ctx, `
			SELECT id FROM rentals
			WHERE status = 'pending'
			  AND (created_at < $1 OR start_at < $2)`,
			cutoff, now)
		if err != nil {
			logger.Error("Failed to query stale pending requests", "error", err)
			return
		}

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				logger.Error("Failed to scan stale rental", "error", err)
				return
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			logger.Error("Error iterating stale rentals", "error", err)
			return
		}
		rows.Close()

		count := 0
		for _, id := range ids {
			rt := &domain.Rental{
				ID:                 id,
				Status:             domain.RentalStatusCancelled,
				CancellationReason: "request expired before approval",
				CancelledAt:        &now,
				CancelledBy:        ExpiredByActor,
			}
			err := jr.store.CancelWithRelease(ctx, rt, domain.RentalStatusPending)
			if errors.Is(err, domain.ErrInvalidTransition) {
				// Acted on since the scan, leave it alone.
				continue
			}
			if err != nil {
				logger.Error("Failed to expire pending request", "rental_id", id, "error", err)
				continue
			}
			count++
		}

		logger.Info("Expired stale pending requests", "count", count)
	})
}

// SendReturnReminders emails renters whose active rental ends within the
// next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		rows, err := jr.db.QueryContext(ctx, `
			SELECT r.id, r.end_at, p.email, t.title
			FROM rentals r
			JOIN profiles p ON p.user_id = r.renter_id
			JOIN tool_items t ON t.id = r.item_id
			WHERE r.status = 'active'
			  AND r.end_at >= $1 AND r.end_at < $2`,
			now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query rentals due back", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var rentalID, email, title string
			var endAt time.Time
			if err := rows.Scan(&rentalID, &endAt, &email, &title); err != nil {
				logger.Error("Failed to scan due rental", "error", err)
				continue
			}
			if err := jr.email.SendReturnReminder(ctx, email, title, endAt); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rentalID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due rentals", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}

// RefreshItemStats recomputes rental counts and average ratings for items
// whose rentals changed in the last day.
func (jr *JobRunner) RefreshItemStats() {
	jr.runWithRecovery("RefreshItemStats", func() {
		ctx := context.Background()

		rows, err := jr.db.QueryContext(ctx, `
			SELECT DISTINCT item_id FROM rentals WHERE updated_at > $1`,
			time.Now().UTC().Add(-24*time.Hour))
		if err != nil {
			logger.Error("Failed to query recently changed items", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var itemID string
			if err := rows.Scan(&itemID); err != nil {
				logger.Error("Failed to scan item id", "error", err)
				continue
			}
			if err := jr.store.RefreshStats(ctx, itemID); err != nil {
				logger.Error("Failed to refresh item stats", "item_id", itemID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating changed items", "error", err)
			return
		}

		logger.Info("Refreshed item stats", "count", count)
	})
}
