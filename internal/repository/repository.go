package repository

import (
	"context"
	"time"

	"resourcehub-backend/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id int32) (*domain.Resource, error)
	ListPublished(ctx context.Context) ([]domain.Resource, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	ListByRequester(ctx context.Context, requesterID int32) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error)
	// ListActiveByResource returns the blocking (pending or approved)
	// bookings for a resource ordered by start time.
	ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.Booking, error)
	// HasConflict applies the half-open overlap predicate against blocking
	// bookings. excludeID > 0 skips that booking, for edit re-checks.
	HasConflict(ctx context.Context, resourceID int32, start, end time.Time, excludeID int32) (bool, error)
	// CreateSeries inserts every booking or none. The whole batch runs in
	// one transaction holding the resource row lock; each occurrence is
	// conflict-checked again under the lock. On conflict it returns the
	// index of the first conflicting occurrence and ErrConflict.
	CreateSeries(ctx context.Context, bookings []*domain.Booking) (int, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, decisionNotes string, decisionBy *int32) error
	// MarkCompletedBefore flips approved bookings whose end has passed to
	// completed and returns how many rows changed.
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// ListApprovedStartingBetween feeds the upcoming-booking reminder job.
	ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
	GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error)
	// ListActiveByResource returns active entries oldest first; the
	// promoter relies on this FIFO order.
	ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.WaitlistEntry, error)
	ListActiveByRequester(ctx context.Context, requesterID int32) ([]domain.WaitlistEntry, error)
	// HasActiveEntry enforces the one-active-entry-per-slot rule.
	HasActiveEntry(ctx context.Context, resourceID, requesterID int32, start, end time.Time) (bool, error)
	MarkPromoted(ctx context.Context, id, bookingID int32) error
	Cancel(ctx context.Context, id int32) (bool, error)
	// CancelExpired retires active entries whose interval already ended.
	CancelExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
