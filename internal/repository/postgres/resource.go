package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

type resourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) repository.ResourceRepository {
	return &resourceRepository{db: db}
}

const resourceColumns = `id, owner_id, title, description, category, location, status, is_restricted,
	availability_schedule, min_booking_minutes, max_booking_minutes, booking_increment_minutes,
	buffer_minutes, advance_horizon_days, min_lead_time_hours, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (*domain.Resource, error) {
	res := &domain.Resource{}
	var schedule sql.NullString
	var minMinutes, maxMinutes, increment, buffer, horizon, leadTime sql.NullInt32
	err := row.Scan(&res.ID, &res.OwnerID, &res.Title, &res.Description, &res.Category, &res.Location,
		&res.Status, &res.IsRestricted, &schedule, &minMinutes, &maxMinutes, &increment,
		&buffer, &horizon, &leadTime, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.AvailabilitySchedule = schedule.String
	res.MinBookingMinutes = minMinutes.Int32
	res.MaxBookingMinutes = maxMinutes.Int32
	res.IncrementMinutes = increment.Int32
	res.BufferMinutes = buffer.Int32
	res.AdvanceHorizonDays = horizon.Int32
	res.MinLeadTimeHours = leadTime.Int32
	res.ApplyRuleDefaults()
	return res, nil
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (owner_id, title, description, category, location, status, is_restricted,
	          availability_schedule, min_booking_minutes, max_booking_minutes, booking_increment_minutes,
	          buffer_minutes, advance_horizon_days, min_lead_time_hours, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		res.OwnerID, res.Title, res.Description, res.Category, res.Location, res.Status, res.IsRestricted,
		nullString(res.AvailabilitySchedule), res.MinBookingMinutes, res.MaxBookingMinutes,
		res.IncrementMinutes, res.BufferMinutes, res.AdvanceHorizonDays, res.MinLeadTimeHours, now,
	).Scan(&res.ID)
}

func (r *resourceRepository) GetByID(ctx context.Context, id int32) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	res, err := scanResource(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return res, err
}

func (r *resourceRepository) ListPublished(ctx context.Context) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE status = 'published' ORDER BY title ASC`
	return r.queryResources(ctx, query)
}

func (r *resourceRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE owner_id = $1 ORDER BY title ASC`
	return r.queryResources(ctx, query, ownerID)
}

func (r *resourceRepository) queryResources(ctx context.Context, query string, args ...any) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources
	   SET title = $1, description = $2, category = $3, location = $4, status = $5, is_restricted = $6,
	       availability_schedule = $7, min_booking_minutes = $8, max_booking_minutes = $9,
	       booking_increment_minutes = $10, buffer_minutes = $11, advance_horizon_days = $12,
	       min_lead_time_hours = $13, updated_at = $14
	 WHERE id = $15`
	result, err := r.db.ExecContext(ctx, query,
		res.Title, res.Description, res.Category, res.Location, res.Status, res.IsRestricted,
		nullString(res.AvailabilitySchedule), res.MinBookingMinutes, res.MaxBookingMinutes,
		res.IncrementMinutes, res.BufferMinutes, res.AdvanceHorizonDays, res.MinLeadTimeHours,
		time.Now(), res.ID)
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
