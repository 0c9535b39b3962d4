package clock

import "time"

// Clock is the time source for session expiry and game timestamps
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// New creates a System clock
func New() System {
	return System{}
}

// Now returns the current time in UTC, truncated to milliseconds so values
// survive a round trip through the sqlite store unchanged
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
