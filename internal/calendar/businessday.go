// Package calendar computes carrier collection dates.
package calendar

import "time"

// DateLayout is the collection date format sent upstream.
const DateLayout = "2006-01-02"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// NextBusinessDay returns the day after now, moved off the weekend. The
// Sunday check runs before the Saturday check and each runs once, so a
// Saturday "tomorrow" lands on Monday.
func NextBusinessDay(now time.Time) time.Time {
	d := now.AddDate(0, 0, 1)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	if d.Weekday() == time.Saturday {
		d = d.AddDate(0, 0, 2)
	}
	return d
}

// CollectionDate formats NextBusinessDay for now as seen in loc.
func CollectionDate(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return NextBusinessDay(now.In(loc)).Format(DateLayout)
}
