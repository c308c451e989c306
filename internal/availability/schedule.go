// Package availability implements the booking engine: weekly schedule
// matching, booking rule validation, interval overlap detection, and the
// next-open-slot search. Everything here is pure arithmetic over in-memory
// values; callers inject "now" and the committed booking set.
package availability

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// endOfDayMinute is the last representable minute of a day. A window ending
// at 23:59 is treated as running to the end of the day, which is how the
// 24/7 template expresses round-the-clock access.
const endOfDayMinute = 24*60 - 1

// Window is a contiguous open time-of-day range on a given weekday,
// inclusive of both ends, minute resolution, same-day only.
type Window struct {
	StartMinute int
	EndMinute   int
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.StartMinute/60, w.StartMinute%60, w.EndMinute/60, w.EndMinute%60)
}

// Schedule is a resource's weekly recurring availability. A nil *Schedule
// means "no schedule constraint": every instant is open.
type Schedule struct {
	days map[time.Weekday][]Window
}

var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

type rawWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseSchedule decodes the persisted weekly schedule JSON
// (day name -> list of {"start":"HH:MM","end":"HH:MM"}). Absent, empty or
// malformed data yields a nil schedule, never an error: a resource without
// a usable schedule is simply unconstrained.
func ParseSchedule(scheduleJSON string) *Schedule {
	if strings.TrimSpace(scheduleJSON) == "" {
		return nil
	}
	var raw map[string][]rawWindow
	if err := json.Unmarshal([]byte(scheduleJSON), &raw); err != nil {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	days := make(map[time.Weekday][]Window, len(raw))
	for name, windows := range raw {
		weekday, ok := dayNames[strings.ToLower(name)]
		if !ok {
			continue
		}
		var parsed []Window
		for _, w := range windows {
			start, okStart := parseTimeOfDay(w.Start)
			end, okEnd := parseTimeOfDay(w.End)
			if !okStart || !okEnd || end < start {
				continue
			}
			parsed = append(parsed, Window{StartMinute: start, EndMinute: end})
		}
		sort.Slice(parsed, func(i, j int) bool { return parsed[i].StartMinute < parsed[j].StartMinute })
		days[weekday] = parsed
	}
	if len(days) == 0 {
		return nil
	}
	return &Schedule{days: days}
}

// parseTimeOfDay parses "HH:MM" into minutes since midnight.
func parseTimeOfDay(s string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// Windows returns the open windows for the given weekday.
func (s *Schedule) Windows(day time.Weekday) []Window {
	if s == nil {
		return nil
	}
	return s.days[day]
}

// IsOpen reports whether the instant falls inside one of the day's windows,
// inclusive of both window ends. A nil schedule is always open.
func (s *Schedule) IsOpen(t time.Time) bool {
	if s == nil {
		return true
	}
	minute := minuteOfDay(t)
	for _, w := range s.days[t.Weekday()] {
		if w.StartMinute <= minute && minute <= w.EndMinute {
			return true
		}
	}
	return false
}

// SpanIsOpen reports whether the entire interval from start to end lies
// within open windows. The check walks each calendar day the interval
// touches and verifies the day's portion is fully contained in that day's
// (merged) windows, so a sub-hour closure in the middle of the span is
// caught. A nil schedule is always open.
func (s *Schedule) SpanIsOpen(start, end time.Time) bool {
	if s == nil {
		return true
	}
	if end.Before(start) {
		return false
	}

	cur := start
	for {
		sameDay := cur.Year() == end.Year() && cur.YearDay() == end.YearDay()
		from := minuteOfDay(cur)
		to := endOfDayMinute
		if sameDay {
			to = minuteOfDay(end)
		}
		if !s.dayCovers(cur.Weekday(), from, to) {
			return false
		}
		if sameDay {
			return true
		}
		cur = startOfNextDay(cur)
	}
}

// dayCovers reports whether the day's windows, merged where contiguous,
// fully contain the inclusive minute range [from, to].
func (s *Schedule) dayCovers(day time.Weekday, from, to int) bool {
	windows := s.days[day]
	if len(windows) == 0 {
		return false
	}
	covered := from
	for _, w := range windows {
		if w.StartMinute > covered {
			break
		}
		if w.EndMinute >= covered {
			// Adjacent windows (17:00-18:00 after 09:00-17:00) extend cover.
			covered = w.EndMinute + 1
		}
		if covered > to {
			return true
		}
	}
	return covered > to
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func startOfNextDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())
}

// DisplayLines renders the schedule for humans, one line per weekday,
// Monday first. A nil schedule yields the unconstrained notice.
func (s *Schedule) DisplayLines() []string {
	if s == nil {
		return []string{"No schedule defined - bookings subject to owner approval"}
	}
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	lines := make([]string, 0, len(order))
	for _, day := range order {
		windows := s.days[day]
		if len(windows) == 0 {
			lines = append(lines, fmt.Sprintf("%s: Closed", day))
			continue
		}
		parts := make([]string, 0, len(windows))
		for _, w := range windows {
			parts = append(parts, fmt.Sprintf("%s - %s", formatMinute(w.StartMinute), formatMinute(w.EndMinute)))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", day, strings.Join(parts, ", ")))
	}
	return lines
}

func formatMinute(minute int) string {
	hour := minute / 60
	min := minute % 60
	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, min, suffix)
}
