package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/config"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/jobs"
	"toolshare-backend/internal/repository/postgres"
)

type nopEmail struct{}

func (nopEmail) SendRentalRequestNotification(context.Context, string, string, string) error {
	return nil
}
func (nopEmail) SendRentalApprovalNotification(context.Context, string, string) error { return nil }
func (nopEmail) SendRentalCancellationNotification(context.Context, string, string, string) error {
	return nil
}
func (nopEmail) SendRentalCompletionNotification(context.Context, string, string) error { return nil }
func (nopEmail) SendReturnReminder(context.Context, string, string, time.Time) error    { return nil }

func newJobFixture(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Booking.PendingExpiryHours = 72
	return jobs.NewJobRunner(db, postgres.NewStore(db), nopEmail{}, cfg), mock
}

func TestExpireStalePendingRequests(t *testing.T) {
	t.Run("RecordsSystemActorAndReleasesBlock", func(t *testing.T) {
		runner, mock := newJobFixture(t)

		mock.ExpectQuery("SELECT id FROM rentals").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rental-1"))

		// Each stale rental goes through the cancel-and-release transaction.
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status=\\$1, cancellation_reason=\\$2, cancelled_at=\\$3, cancelled_by=\\$4").
			WithArgs(domain.RentalStatusCancelled, "request expired before approval",
				sqlmock.AnyArg(), jobs.ExpiredByActor, nil, "", sqlmock.AnyArg(),
				"rental-1", domain.RentalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM availability_blocks WHERE rental_id = \\$1").
			WithArgs("rental-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		runner.ExpireStalePendingRequests()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SkipsRentalApprovedSinceScan", func(t *testing.T) {
		runner, mock := newJobFixture(t)

		mock.ExpectQuery("SELECT id FROM rentals").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rental-2"))

		// Zero rows updated means the rental left pending; nothing else runs.
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status=\\$1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		runner.ExpireStalePendingRequests()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DisabledWhenExpiryUnset", func(t *testing.T) {
		runner, mock := newJobFixture(t)
		runner.Config().Booking.PendingExpiryHours = 0

		runner.ExpireStalePendingRequests()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
