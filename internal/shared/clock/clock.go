// Package clock provides the injected "now" source used by the booking
// and scheduling services. Core logic never reads the system clock
// directly: each operation takes a single snapshot so one purchase
// attempt observes one consistent moment, and tests can supply fixed
// values.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the real system clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Intended for tests.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time { return f.Time }

// At builds a Fixed clock from a date and a wall-clock "HH:MM" time.
func At(year int, month time.Month, day int, hhmm string) Fixed {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return Fixed{Time: time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, time.UTC)}
}
