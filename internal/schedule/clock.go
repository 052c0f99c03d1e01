package schedule

import "time"

// Clock supplies "now" to the minute ticker and the reminder tasks so tests
// can pin the day and time of day.
type Clock interface {
	Now() time.Time
}

// RealClock reads the local wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
