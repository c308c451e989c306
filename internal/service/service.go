package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resourcehub-backend/internal/domain"
)

var (
	// ErrResourceUnavailable means the resource is missing or not published.
	ErrResourceUnavailable = errors.New("resource is not available for booking")
	// ErrUnauthorized means the actor may not perform the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTransition means the booking is not in a status the
	// operation accepts.
	ErrInvalidTransition = errors.New("booking status does not allow this action")
	// ErrAlreadyWaitlisted means the requester holds an active entry for
	// the same resource and interval.
	ErrAlreadyWaitlisted = errors.New("already on the waitlist for this time slot")
	// ErrWaitlistRecurring means a multi-occurrence request asked to be
	// waitlisted; the waitlist only accepts single intervals.
	ErrWaitlistRecurring = errors.New("waitlists support single reservations only")
)

// ConflictError reports that an occurrence of a booking request overlaps a
// blocking booking. Conflicts are a normal outcome, not a failure: the
// caller either surfaces the occurrence or offers the waitlist.
type ConflictError struct {
	// OccurrenceIndex is the zero-based index of the first conflicting
	// occurrence in the expanded series.
	OccurrenceIndex int
	Start           time.Time
	End             time.Time
	// WaitlistEligible is true when the request reduced to one occurrence
	// and may be queued instead.
	WaitlistEligible bool
}

func (e *ConflictError) Error() string {
	if e.OccurrenceIndex == 0 {
		return "the requested time slot conflicts with an existing booking"
	}
	return fmt.Sprintf("occurrence #%d conflicts with an existing booking", e.OccurrenceIndex+1)
}

// BookingRequest carries one booking attempt through the engine.
type BookingRequest struct {
	ResourceID  int32
	RequesterID int32
	Start       time.Time
	End         time.Time
	Notes       string
	// Frequency is "", "none", "daily" or "weekly".
	Frequency string
	// JoinWaitlistOnConflict queues the interval instead of failing when
	// the single-occurrence request conflicts.
	JoinWaitlistOnConflict bool
}

// BookingResult is the outcome of a successful request: either the created
// occurrences, or the waitlist entry the request was redirected into.
type BookingResult struct {
	Bookings      []domain.Booking
	WaitlistEntry *domain.WaitlistEntry
}

type BookingService interface {
	RequestBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
	Get(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error)
	ListMine(ctx context.Context, userID int32) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error)
	Approve(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error)
	Reject(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error)
	Cancel(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error)
	Complete(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error)
	ListMyWaitlist(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error)
	CancelWaitlistEntry(ctx context.Context, actorID, entryID int32) error
}

// Slot is a next-open-slot answer.
type Slot struct {
	Start time.Time
	End   time.Time
}

type AvailabilityService interface {
	// NextSlot finds the first schedule-open, conflict-free interval of the
	// requested duration for a resource, or nothing within the horizon.
	NextSlot(ctx context.Context, resourceID, durationMinutes int32) (*Slot, error)
	ScheduleSummary(ctx context.Context, resourceID int32) ([]string, error)
	// RulesSummary renders the resource's booking rules as display strings,
	// keyed by rule name; unset rules are omitted.
	RulesSummary(ctx context.Context, resourceID int32) (map[string]string, error)
}

type ResourceService interface {
	Get(ctx context.Context, id int32) (*domain.Resource, error)
	ListPublished(ctx context.Context) ([]domain.Resource, error)
	ListMine(ctx context.Context, ownerID int32) ([]domain.Resource, error)
	Create(ctx context.Context, ownerID int32, resource *domain.Resource) error
	// UpdateSchedule accepts either a preset template key or raw weekly
	// schedule JSON; an empty value clears the constraint.
	UpdateSchedule(ctx context.Context, actorID, resourceID int32, templateKey, scheduleJSON string) (*domain.Resource, error)
	UpdateRules(ctx context.Context, actorID, resourceID int32, rules domain.Resource) (*domain.Resource, error)
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type NotificationService interface {
	List(ctx context.Context, userID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService delivers outbound mail. Calls are fire-and-forget from the
// booking path: delivery failures are logged, never propagated.
type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
