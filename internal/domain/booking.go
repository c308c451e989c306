package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Blocking reports whether a booking in this status counts toward conflicts.
// Only pending and approved bookings hold their interval.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

type Booking struct {
	ID          int32         `json:"id"`
	ResourceID  int32         `json:"resource_id"`
	RequesterID int32         `json:"requester_id"`
	Start       time.Time     `json:"start_datetime"`
	End         time.Time     `json:"end_datetime"`
	Status      BookingStatus `json:"status"`

	// RecurrenceRule is the opaque descriptor recorded by the expander,
	// e.g. "FREQ=WEEKLY;COUNT=3". Empty for one-off bookings.
	RecurrenceRule string `json:"recurrence_rule,omitempty"`
	// SeriesID groups the occurrences created by one recurring request.
	SeriesID string `json:"series_id,omitempty"`

	Notes         string     `json:"notes,omitempty"`
	DecisionNotes string     `json:"decision_notes,omitempty"`
	DecisionBy    *int32     `json:"decision_by,omitempty"`
	DecisionAt    *time.Time `json:"decision_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
