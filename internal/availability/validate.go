package availability

import (
	"fmt"
	"time"
)

// ReasonCode identifies why a candidate interval was rejected. Callers
// branch on the code; Message is safe to show to the requester.
type ReasonCode string

const (
	ReasonInvalidRange    ReasonCode = "invalid_range"
	ReasonTooShort        ReasonCode = "duration_too_short"
	ReasonTooLong         ReasonCode = "duration_too_long"
	ReasonBadIncrement    ReasonCode = "duration_not_increment"
	ReasonLeadTime        ReasonCode = "insufficient_lead_time"
	ReasonBeyondHorizon   ReasonCode = "beyond_advance_horizon"
	ReasonClosedAtStart   ReasonCode = "closed_at_start"
	ReasonClosedBeforeEnd ReasonCode = "closed_before_end"
	ReasonClosedWithin    ReasonCode = "closed_within_span"
)

// ValidationError is an expected user-input rejection, never an
// infrastructure failure.
type ValidationError struct {
	Code    ReasonCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rules are the numeric booking constraints a resource carries.
type Rules struct {
	MinDurationMinutes int32
	MaxDurationMinutes int32
	IncrementMinutes   int32
	BufferMinutes      int32
	AdvanceHorizonDays int32
	MinLeadTimeHours   int32
}

// ValidateBookingTimes runs the rule checks in order and returns the first
// failure as a *ValidationError, or nil when the interval is acceptable.
// Checks: minimum duration, maximum duration, increment, lead time, advance
// horizon, then schedule containment. Conflicts with other bookings are a
// separate concern and not checked here.
func ValidateBookingTimes(start, end time.Time, schedule *Schedule, rules Rules, now time.Time) *ValidationError {
	if !end.After(start) {
		return &ValidationError{
			Code:    ReasonInvalidRange,
			Message: "End time must be after the start time",
		}
	}
	duration := end.Sub(start).Minutes()

	if rules.MinDurationMinutes > 0 && duration < float64(rules.MinDurationMinutes) {
		return &ValidationError{
			Code:    ReasonTooShort,
			Message: fmt.Sprintf("Booking must be at least %d minutes long", rules.MinDurationMinutes),
		}
	}
	if rules.MaxDurationMinutes > 0 && duration > float64(rules.MaxDurationMinutes) {
		return &ValidationError{
			Code:    ReasonTooLong,
			Message: fmt.Sprintf("Booking cannot exceed %.1f hours", float64(rules.MaxDurationMinutes)/60),
		}
	}
	if rules.IncrementMinutes > 0 && end.Sub(start)%(time.Duration(rules.IncrementMinutes)*time.Minute) != 0 {
		return &ValidationError{
			Code:    ReasonBadIncrement,
			Message: fmt.Sprintf("Booking duration must be in %d-minute increments", rules.IncrementMinutes),
		}
	}
	if rules.MinLeadTimeHours > 0 {
		minStart := now.Add(time.Duration(rules.MinLeadTimeHours) * time.Hour)
		if start.Before(minStart) {
			return &ValidationError{
				Code:    ReasonLeadTime,
				Message: fmt.Sprintf("Booking must be made at least %d hours in advance", rules.MinLeadTimeHours),
			}
		}
	}
	if rules.AdvanceHorizonDays > 0 {
		horizon := now.AddDate(0, 0, int(rules.AdvanceHorizonDays))
		if start.After(horizon) {
			return &ValidationError{
				Code:    ReasonBeyondHorizon,
				Message: fmt.Sprintf("Booking cannot start more than %d days in advance", rules.AdvanceHorizonDays),
			}
		}
	}

	if schedule != nil {
		if !schedule.IsOpen(start) {
			return &ValidationError{
				Code:    ReasonClosedAtStart,
				Message: fmt.Sprintf("Resource is not available at %s", start.Format("Monday 3:04 PM")),
			}
		}
		if !schedule.IsOpen(end) {
			return &ValidationError{
				Code:    ReasonClosedBeforeEnd,
				Message: fmt.Sprintf("Resource closes before %s on %s", end.Format("3:04 PM"), end.Format("Monday")),
			}
		}
		if !schedule.SpanIsOpen(start, end) {
			return &ValidationError{
				Code:    ReasonClosedWithin,
				Message: "Resource is not available during the requested time period",
			}
		}
	}
	return nil
}
