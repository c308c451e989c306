package domain

import "time"

type ResourceStatus string

const (
	ResourceStatusDraft     ResourceStatus = "draft"
	ResourceStatusPublished ResourceStatus = "published"
	ResourceStatusArchived  ResourceStatus = "archived"
)

// Booking rule defaults applied when a resource leaves a column unset.
const (
	DefaultMinBookingMinutes  = 30
	DefaultMaxBookingMinutes  = 480
	DefaultIncrementMinutes   = 30
	DefaultBufferMinutes      = 0
	DefaultAdvanceHorizonDays = 90
	DefaultMinLeadTimeHours   = 0
)

type Resource struct {
	ID           int32          `json:"id"`
	OwnerID      int32          `json:"owner_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Location     string         `json:"location"`
	Status       ResourceStatus `json:"status"`
	IsRestricted bool           `json:"is_restricted"`

	// AvailabilitySchedule holds the weekly schedule JSON as stored.
	// Empty or malformed data means the resource has no schedule constraint.
	AvailabilitySchedule string `json:"availability_schedule,omitempty"`

	MinBookingMinutes  int32 `json:"min_booking_minutes"`
	MaxBookingMinutes  int32 `json:"max_booking_minutes"`
	IncrementMinutes   int32 `json:"booking_increment_minutes"`
	BufferMinutes      int32 `json:"buffer_minutes"`
	AdvanceHorizonDays int32 `json:"advance_horizon_days"`
	MinLeadTimeHours   int32 `json:"min_lead_time_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyRuleDefaults fills unset (zero) rule columns with the system defaults.
// MaxBookingMinutes is clamped so the max >= min invariant always holds.
func (r *Resource) ApplyRuleDefaults() {
	if r.MinBookingMinutes <= 0 {
		r.MinBookingMinutes = DefaultMinBookingMinutes
	}
	if r.MaxBookingMinutes <= 0 {
		r.MaxBookingMinutes = DefaultMaxBookingMinutes
	}
	if r.MaxBookingMinutes < r.MinBookingMinutes {
		r.MaxBookingMinutes = r.MinBookingMinutes
	}
	if r.IncrementMinutes <= 0 {
		r.IncrementMinutes = DefaultIncrementMinutes
	}
	if r.BufferMinutes < 0 {
		r.BufferMinutes = DefaultBufferMinutes
	}
	if r.AdvanceHorizonDays <= 0 {
		r.AdvanceHorizonDays = DefaultAdvanceHorizonDays
	}
	if r.MinLeadTimeHours < 0 {
		r.MinLeadTimeHours = DefaultMinLeadTimeHours
	}
}
