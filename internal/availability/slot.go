package availability

import "time"

// slotStepMinutes is the scan granularity of the next-slot search.
const slotStepMinutes = 30

// SlotRequest describes a next-open-slot query.
type SlotRequest struct {
	DurationMinutes int32
	BufferMinutes   int32
	LeadTimeHours   int32
	MaxDaysAhead    int32
	// StartFrom optionally anchors the search; the zero value means "now".
	StartFrom time.Time
}

// NextSlot scans forward in 30-minute steps for the first interval of the
// requested duration that lies inside the schedule and clears every
// existing booking, each widened by the buffer. The search begins at
// max(StartFrom, now + lead time) rounded up to the next whole hour and
// gives up after MaxDaysAhead days. Without a schedule there is nothing to
// enumerate, so the search reports no slot.
//
// The scan is linear on purpose: the horizon is at most a few weeks and a
// resource carries few active bookings, so a merged free-interval
// computation would buy nothing here.
func NextSlot(schedule *Schedule, existing []Interval, req SlotRequest, now time.Time) (time.Time, bool) {
	if schedule == nil || req.DurationMinutes <= 0 || req.MaxDaysAhead <= 0 {
		return time.Time{}, false
	}

	searchStart := req.StartFrom
	if searchStart.IsZero() {
		searchStart = now
	}
	if req.LeadTimeHours > 0 {
		earliest := now.Add(time.Duration(req.LeadTimeHours) * time.Hour)
		if earliest.After(searchStart) {
			searchStart = earliest
		}
	}
	searchStart = roundUpToHour(searchStart)

	blocked := make([]Interval, 0, len(existing))
	for _, iv := range existing {
		blocked = append(blocked, ExpandByBuffer(iv, req.BufferMinutes))
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	step := slotStepMinutes * time.Minute
	searchEnd := searchStart.AddDate(0, 0, int(req.MaxDaysAhead))

	t := searchStart
	for t.Before(searchEnd) {
		candidate := Interval{Start: t, End: t.Add(duration)}
		if !schedule.SpanIsOpen(candidate.Start, candidate.End) {
			t = t.Add(step)
			continue
		}
		if next, conflicted := earliestClearance(candidate, blocked); conflicted {
			// Resume at the end of the padded booking that blocked us; the
			// slot right after a buffer is a valid answer even off the
			// 30-minute grid.
			t = next
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// earliestClearance reports whether the candidate overlaps any blocked
// interval, and if so the latest end among the intervals it overlaps. The
// overlap condition guarantees that end is strictly after candidate.Start,
// so the caller's scan always advances.
func earliestClearance(candidate Interval, blocked []Interval) (time.Time, bool) {
	var resume time.Time
	conflicted := false
	for _, b := range blocked {
		if Overlaps(candidate, b) {
			conflicted = true
			if b.End.After(resume) {
				resume = b.End
			}
		}
	}
	return resume, conflicted
}

// roundUpToHour moves t forward to the next whole hour unless it is already
// on one.
func roundUpToHour(t time.Time) time.Time {
	if t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, t.Hour()+1, 0, 0, 0, t.Location())
}
