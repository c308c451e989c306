package availability

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// intervals, where one ends exactly as the other starts, do not overlap.
// This predicate is the single definition of "conflict" in the engine; the
// SQL conflict query in the booking repository encodes the same comparison.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FirstOverlap returns the index of the first candidate that overlaps any
// of the blocked intervals, or -1 when every candidate is clear. Candidates
// are inspected in order so callers can report which occurrence failed.
func FirstOverlap(candidates []Interval, blocked []Interval) int {
	for i, c := range candidates {
		for _, b := range blocked {
			if Overlaps(c, b) {
				return i
			}
		}
	}
	return -1
}

// ExpandByBuffer widens the interval by the buffer on both sides. A zero or
// negative buffer returns the interval unchanged.
func ExpandByBuffer(iv Interval, bufferMinutes int32) Interval {
	if bufferMinutes <= 0 {
		return iv
	}
	pad := time.Duration(bufferMinutes) * time.Minute
	return Interval{Start: iv.Start.Add(-pad), End: iv.End.Add(pad)}
}
