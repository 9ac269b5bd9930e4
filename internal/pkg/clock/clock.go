package clock

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date layout used for attendance dates.
const DateLayout = "2006-01-02"

// Clock provides the current instant and the timezone that defines "today".
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns a wall clock that evaluates calendar dates in the named zone.
func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &systemClock{loc: loc}, nil
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// FixedClock reports a pinned instant that only Advance moves.
type FixedClock struct {
	now time.Time
	loc *time.Location
}

// Fixed returns a clock pinned to t, evaluated in loc (UTC when nil).
func Fixed(t time.Time, loc *time.Location) *FixedClock {
	if loc == nil {
		loc = time.UTC
	}
	return &FixedClock{now: t, loc: loc}
}

func (c *FixedClock) Now() time.Time {
	return c.now.In(c.loc)
}

func (c *FixedClock) Location() *time.Location {
	return c.loc
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Today returns the current calendar date of c as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in the clock's zone.
func ParseDate(c Clock, date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, c.Location())
}
