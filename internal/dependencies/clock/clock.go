package clock

import "time"

// Clock provides the current time. Calendar dates are derived from the location of
// the returned time, so implementations decide which zone "today" is evaluated in.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock in a fixed location
type RealClock struct {
	loc *time.Location
}

// New creates a RealClock reporting times in loc (time.Local when nil)
func New(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the zone used to derive calendar dates
func (c *RealClock) Location() *time.Location {
	return c.loc
}
