// Package recurrence expands a base interval into the bounded occurrence
// sequence of a daily or weekly repeating request, and owns the descriptor
// string recorded on the resulting bookings. The descriptor is opaque to
// every other package; only Describe interprets it, and only for display.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Frequency represents the supported repeat intervals.
type Frequency string

const (
	FrequencyNone   Frequency = "none"
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

const (
	// DefaultCount is the number of occurrences a recurring request expands
	// to when the deployment does not configure one.
	DefaultCount = 3
	// MinCount is the smallest series length that still counts as recurring.
	MinCount = 2
)

// ErrInvalidFrequency indicates an unsupported frequency value.
var ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

// ParseFrequency normalizes a user-supplied frequency string. Empty input
// means a one-off request.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FrequencyNone, nil
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	default:
		return FrequencyNone, ErrInvalidFrequency
	}
}

// Occurrence is one concrete interval generated from a recurrence request.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Expand produces the ordered occurrence list for a base interval. A
// frequency of none yields the single base interval. Daily and weekly
// series shift the base by 1 or 7 days per step; count is clamped to
// MinCount so a "recurring" request always has at least two occurrences.
func Expand(start, end time.Time, freq Frequency, count int) []Occurrence {
	if freq == FrequencyNone {
		return []Occurrence{{Start: start, End: end}}
	}
	if count < MinCount {
		count = DefaultCount
	}
	days := 1
	if freq == FrequencyWeekly {
		days = 7
	}
	occurrences := make([]Occurrence, 0, count)
	for i := 0; i < count; i++ {
		occurrences = append(occurrences, Occurrence{
			Start: start.AddDate(0, 0, days*i),
			End:   end.AddDate(0, 0, days*i),
		})
	}
	return occurrences
}

// Rule encodes the compact descriptor stored alongside a recurring series,
// e.g. "FREQ=WEEKLY;COUNT=3". One-off requests have no descriptor.
func Rule(freq Frequency, count int) string {
	if freq == FrequencyNone {
		return ""
	}
	if count < MinCount {
		count = DefaultCount
	}
	return fmt.Sprintf("FREQ=%s;COUNT=%d", strings.ToUpper(string(freq)), count)
}

// Describe renders a stored descriptor for humans. Unrecognized input is
// echoed back rather than rejected; the descriptor is display data, not a
// scheduling input.
func Describe(rule string) string {
	if strings.TrimSpace(rule) == "" {
		return "One-time reservation"
	}
	var freq string
	var count int
	for _, part := range strings.Split(rule, ";") {
		if v, ok := strings.CutPrefix(part, "FREQ="); ok {
			freq = strings.ToLower(v)
		}
		if v, ok := strings.CutPrefix(part, "COUNT="); ok {
			fmt.Sscanf(v, "%d", &count)
		}
	}
	if freq == "" || count == 0 {
		return rule
	}
	return fmt.Sprintf("Repeats %s, %d occurrences", freq, count)
}
