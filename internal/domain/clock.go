package domain

import "time"

// Clock abstracts wall-clock access. Calculations take explicit instants;
// only the edges (services, handlers) resolve "now" through a Clock, which
// keeps every computation reproducible in tests and in review mode.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}
