// Package schedule holds the value types and pure predicates the
// showtime scheduler and booking flow are built on: wall-clock time
// windows within a single day, date ranges, and the overlap test used
// to keep two screenings out of the same room at the same time.
package schedule

import "time"

// Window is a same-day wall-clock interval [Start, Finish].
type Window struct {
	Start  TimeOfDay
	Finish TimeOfDay
}

// Contains reports whether t lies within the window, boundaries included.
func (w Window) Contains(t TimeOfDay) bool {
	return w.Start <= t && t <= w.Finish
}

// Minutes returns the wall-clock length of the window in minutes.
// Windows never span midnight, so this is a plain difference.
func (w Window) Minutes() int {
	return w.Finish.Minutes() - w.Start.Minutes()
}

// Overlaps reports whether either endpoint of candidate falls inside
// existing, boundaries included. Note this is a point-containment test,
// not interval intersection: it is asymmetric, and a candidate that
// fully contains the existing window without either of its endpoints
// crossing it is not detected. Callers that care about both directions
// must test both.
func Overlaps(existing, candidate Window) bool {
	return existing.Contains(candidate.Start) || existing.Contains(candidate.Finish)
}

// DeriveFinish computes a session's finish time from its start time,
// the movie running time and the configured break between screenings.
// The result wraps within the same day; overnight screenings are not
// supported.
func DeriveFinish(start TimeOfDay, movieMinutes, breakMinutes int) TimeOfDay {
	return start.AddMinutes(movieMinutes + breakMinutes)
}

// DateOnly strips the time-of-day portion, keeping the date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start  time.Time
	Finish time.Time
}

// NewDateRange normalizes both bounds to date precision. A zero finish
// collapses the range to the single start date.
func NewDateRange(start, finish time.Time) DateRange {
	if finish.IsZero() {
		finish = start
	}
	return DateRange{Start: DateOnly(start), Finish: DateOnly(finish)}
}

// ContainsDate reports whether d falls within the range, inclusive.
func (r DateRange) ContainsDate(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(r.Start) && !d.After(r.Finish)
}

// Intersects reports whether two date ranges share at least one day.
func (r DateRange) Intersects(other DateRange) bool {
	return !r.Start.After(other.Finish) && !other.Start.After(r.Finish)
}
