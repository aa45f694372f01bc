package service

import (
	"time"

	"exam-prep-be/pkg/stats"
)

// Clock resolves "now" and "today" in the study timezone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location == nil {
		return now()
	}
	return now().In(c.Location)
}

func (c Clock) Today() stats.Day {
	return stats.DayOf(c.now())
}

// midnight returns the start of d in the study timezone.
func (c Clock) midnight(d stats.Day) time.Time {
	t := d.Time()
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayOrToday parses an optional YYYY-MM-DD value, defaulting to today.
func (c Clock) dayOrToday(s string) (stats.Day, error) {
	if s == "" {
		return c.Today(), nil
	}
	return stats.ParseDay(s)
}
