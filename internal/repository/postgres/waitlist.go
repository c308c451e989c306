package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

type waitlistRepository struct {
	db *sql.DB
}

func NewWaitlistRepository(db *sql.DB) repository.WaitlistRepository {
	return &waitlistRepository{db: db}
}

const waitlistColumns = `id, resource_id, requester_id, start_datetime, end_datetime, status,
	promoted_booking_id, created_at, processed_at`

func scanWaitlistEntry(row interface{ Scan(...any) error }) (*domain.WaitlistEntry, error) {
	e := &domain.WaitlistEntry{}
	var promotedID sql.NullInt32
	var processedAt sql.NullTime
	err := row.Scan(&e.ID, &e.ResourceID, &e.RequesterID, &e.Start, &e.End, &e.Status,
		&promotedID, &e.CreatedAt, &processedAt)
	if err != nil {
		return nil, err
	}
	if promotedID.Valid {
		e.PromotedBookingID = &promotedID.Int32
	}
	if processedAt.Valid {
		e.ProcessedAt = &processedAt.Time
	}
	return e, nil
}

func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	query := `INSERT INTO waitlist_entries (resource_id, requester_id, start_datetime, end_datetime, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	entry.CreatedAt = now
	return r.db.QueryRowContext(ctx, query,
		entry.ResourceID, entry.RequesterID, entry.Start, entry.End, entry.Status, now,
	).Scan(&entry.ID)
}

func (r *waitlistRepository) GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1`
	e, err := scanWaitlistEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return e, err
}

func (r *waitlistRepository) ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.WaitlistEntry, error) {
	// Oldest first: the earliest request wins a freed slot.
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries
	 WHERE resource_id = $1 AND status = 'active'
	 ORDER BY created_at ASC, id ASC`
	return r.queryEntries(ctx, query, resourceID)
}

func (r *waitlistRepository) ListActiveByRequester(ctx context.Context, requesterID int32) ([]domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries
	 WHERE requester_id = $1 AND status = 'active'
	 ORDER BY created_at DESC`
	return r.queryEntries(ctx, query, requesterID)
}

func (r *waitlistRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.WaitlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *waitlistRepository) HasActiveEntry(ctx context.Context, resourceID, requesterID int32, start, end time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM waitlist_entries
	 WHERE resource_id = $1 AND requester_id = $2
	   AND start_datetime = $3 AND end_datetime = $4
	   AND status = 'active'`
	var count int
	if err := r.db.QueryRowContext(ctx, query, resourceID, requesterID, start, end).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *waitlistRepository) MarkPromoted(ctx context.Context, id, bookingID int32) error {
	query := `UPDATE waitlist_entries
	   SET status = 'promoted', promoted_booking_id = $1, processed_at = $2
	 WHERE id = $3 AND status = 'active'`
	result, err := r.db.ExecContext(ctx, query, bookingID, time.Now(), id)
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

func (r *waitlistRepository) Cancel(ctx context.Context, id int32) (bool, error) {
	query := `UPDATE waitlist_entries
	   SET status = 'cancelled', processed_at = $1
	 WHERE id = $2 AND status = 'active'`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *waitlistRepository) CancelExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE waitlist_entries
	   SET status = 'cancelled', processed_at = $1
	 WHERE status = 'active' AND end_datetime < $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
