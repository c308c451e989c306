package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, resource_id, requester_id, start_datetime, end_datetime, status,
	recurrence_rule, series_id, notes, decision_notes, decision_by, decision_at, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var recurrenceRule, seriesID, notes, decisionNotes sql.NullString
	var decisionBy sql.NullInt32
	var decisionAt sql.NullTime
	err := row.Scan(&b.ID, &b.ResourceID, &b.RequesterID, &b.Start, &b.End, &b.Status,
		&recurrenceRule, &seriesID, &notes, &decisionNotes, &decisionBy, &decisionAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.RecurrenceRule = recurrenceRule.String
	b.SeriesID = seriesID.String
	b.Notes = notes.String
	b.DecisionNotes = decisionNotes.String
	if decisionBy.Valid {
		b.DecisionBy = &decisionBy.Int32
	}
	if decisionAt.Valid {
		b.DecisionAt = &decisionAt.Time
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) ListByRequester(ctx context.Context, requesterID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE requester_id = $1 ORDER BY start_datetime DESC`
	return r.queryBookings(ctx, query, requesterID)
}

func (r *bookingRepository) ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT b.id, b.resource_id, b.requester_id, b.start_datetime, b.end_datetime, b.status,
	       b.recurrence_rule, b.series_id, b.notes, b.decision_notes, b.decision_by, b.decision_at, b.created_at, b.updated_at
	  FROM bookings b
	  JOIN resources r ON r.id = b.resource_id
	 WHERE r.owner_id = $1`
	args := []any{ownerID}
	if status != "" {
		query += ` AND b.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY b.start_datetime ASC`
	return r.queryBookings(ctx, query, args...)
}

func (r *bookingRepository) ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	 WHERE resource_id = $1 AND status IN ('pending', 'approved')
	 ORDER BY start_datetime ASC`
	return r.queryBookings(ctx, query, resourceID)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// conflictQuery is the half-open overlap predicate: an existing blocking
// booking conflicts iff it starts before the candidate ends and ends after
// the candidate starts. Back-to-back bookings do not match.
const conflictQuery = `SELECT COUNT(*) FROM bookings
 WHERE resource_id = $1
   AND status IN ('pending', 'approved')
   AND start_datetime < $2
   AND end_datetime > $3`

func (r *bookingRepository) HasConflict(ctx context.Context, resourceID int32, start, end time.Time, excludeID int32) (bool, error) {
	return hasConflict(ctx, r.db, resourceID, start, end, excludeID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasConflict(ctx context.Context, q querier, resourceID int32, start, end time.Time, excludeID int32) (bool, error) {
	query := conflictQuery
	args := []any{resourceID, end, start}
	if excludeID > 0 {
		query += ` AND id != $4`
		args = append(args, excludeID)
	}
	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSeries inserts the whole batch inside one transaction. The resource
// row is locked first so the conflict re-check and the inserts are atomic
// against concurrent requests for the same resource; this is the only write
// path for bookings, so two requests can never both win the same slot.
func (r *bookingRepository) CreateSeries(ctx context.Context, bookings []*domain.Booking) (int, error) {
	if len(bookings) == 0 {
		return -1, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback()

	resourceID := bookings[0].ResourceID
	var locked int32
	err = tx.QueryRowContext(ctx, `SELECT id FROM resources WHERE id = $1 FOR UPDATE`, resourceID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, repository.ErrNotFound
	}
	if err != nil {
		return -1, err
	}

	for i, b := range bookings {
		conflicted, err := hasConflict(ctx, tx, resourceID, b.Start, b.End, 0)
		if err != nil {
			return -1, err
		}
		if conflicted {
			return i, repository.ErrConflict
		}
	}

	now := time.Now()
	insert := `INSERT INTO bookings (resource_id, requester_id, start_datetime, end_datetime, status,
	           recurrence_rule, series_id, notes, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	for _, b := range bookings {
		err := tx.QueryRowContext(ctx, insert,
			b.ResourceID, b.RequesterID, b.Start, b.End, b.Status,
			nullString(b.RecurrenceRule), nullString(b.SeriesID), nullString(b.Notes), now, now,
		).Scan(&b.ID)
		if err != nil {
			return -1, fmt.Errorf("insert booking: %w", err)
		}
		b.CreatedAt = now
		b.UpdatedAt = now
	}
	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return -1, nil
}

// UpdateStatus records a decision when decisionBy is set. Without a decider
// (cancel, complete) only the status changes, so an earlier approval or
// rejection record survives.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, decisionNotes string, decisionBy *int32) error {
	var (
		result sql.Result
		err    error
	)
	if decisionBy != nil {
		query := `UPDATE bookings
		   SET status = $1, decision_notes = $2, decision_by = $3, decision_at = $4, updated_at = $4
		 WHERE id = $5`
		result, err = r.db.ExecContext(ctx, query, status, nullString(decisionNotes), decisionBy, time.Now(), id)
	} else {
		query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
		result, err = r.db.ExecContext(ctx, query, status, time.Now(), id)
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE bookings
	   SET status = 'completed', updated_at = $1
	 WHERE status = 'approved' AND end_datetime < $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *bookingRepository) ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	 WHERE status = 'approved' AND start_datetime >= $1 AND start_datetime < $2
	 ORDER BY start_datetime ASC`
	return r.queryBookings(ctx, query, from, to)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
