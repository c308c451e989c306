package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

var bookingColumnList = []string{
	"id", "resource_id", "requester_id", "start_datetime", "end_datetime", "status",
	"recurrence_rule", "series_id", "notes", "decision_notes", "decision_by", "decision_at",
	"created_at", "updated_at",
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingColumnList).
			AddRow(1, 10, 2, now, now.Add(time.Hour), "approved",
				nil, nil, nil, nil, nil, nil, now, now)
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), b.ID)
		assert.Equal(t, domain.BookingStatusApproved, b.Status)
		assert.Empty(t, b.SeriesID)
		assert.Nil(t, b.DecisionBy)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(bookingColumnList))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepository_HasConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("ConflictFound", func(t *testing.T) {
		// Candidate end first, start second: existing.start < $2 AND existing.end > $3.
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WithArgs(int32(10), end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		conflicted, err := repo.HasConflict(ctx, 10, start, end, 0)
		require.NoError(t, err)
		assert.True(t, conflicted)
	})

	t.Run("Clear", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WithArgs(int32(10), end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		conflicted, err := repo.HasConflict(ctx, 10, start, end, 0)
		require.NoError(t, err)
		assert.False(t, conflicted)
	})

	t.Run("ExcludesGivenBooking", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WithArgs(int32(10), end, start, int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		conflicted, err := repo.HasConflict(ctx, 10, start, end, 7)
		require.NoError(t, err)
		assert.False(t, conflicted)
	})
}

func TestBookingRepository_CreateSeries(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	series := func() []*domain.Booking {
		return []*domain.Booking{
			{ResourceID: 10, RequesterID: 2, Start: start, End: end, Status: domain.BookingStatusApproved, RecurrenceRule: "FREQ=DAILY;COUNT=2", SeriesID: "s-1"},
			{ResourceID: 10, RequesterID: 2, Start: start.AddDate(0, 0, 1), End: end.AddDate(0, 0, 1), Status: domain.BookingStatusApproved, RecurrenceRule: "FREQ=DAILY;COUNT=2", SeriesID: "s-1"},
		}
	}

	t.Run("AllOrNothingInsert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM resources WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		bookings := series()
		idx, err := repo.CreateSeries(context.Background(), bookings)
		require.NoError(t, err)
		assert.Equal(t, -1, idx)
		assert.Equal(t, int32(100), bookings[0].ID)
		assert.Equal(t, int32(101), bookings[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictRollsBackAndReportsIndex", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM resources WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		idx, err := repo.CreateSeries(context.Background(), series())
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Equal(t, 1, idx)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingResource", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM resources WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err = repo.CreateSeries(context.Background(), series())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	actor := int32(1)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings").
			WithArgs("approved", sqlmock.AnyArg(), &actor, sqlmock.AnyArg(), int32(77)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 77, domain.BookingStatusApproved, "fine", &actor)
		assert.NoError(t, err)
	})

	t.Run("NoDeciderLeavesDecisionColumns", func(t *testing.T) {
		// Cancelling an approved booking must not erase who approved it.
		mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs("cancelled", sqlmock.AnyArg(), int32(77)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 77, domain.BookingStatusCancelled, "", nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 99, domain.BookingStatusRejected, "", nil)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepository_MarkCompletedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	cutoff := time.Now()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(sqlmock.AnyArg(), cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.MarkCompletedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
