package domain

import "time"

type WaitlistStatus string

const (
	WaitlistStatusActive    WaitlistStatus = "active"
	WaitlistStatusPromoted  WaitlistStatus = "promoted"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry is a queued request for a single interval that was booked
// when the user asked for it. Entries never carry a recurrence; the waitlist
// only accepts one-off intervals.
type WaitlistEntry struct {
	ID          int32          `json:"id"`
	ResourceID  int32          `json:"resource_id"`
	RequesterID int32          `json:"requester_id"`
	Start       time.Time      `json:"start_datetime"`
	End         time.Time      `json:"end_datetime"`
	Status      WaitlistStatus `json:"status"`

	// PromotedBookingID references the booking created when the entry was
	// promoted. Nil while the entry is active or after cancellation.
	PromotedBookingID *int32 `json:"promoted_booking_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
