package internal

import "time"

// Clock returns the current point in time. Upcoming and past shows are determined against it
type Clock func() time.Time

// SystemClock is the Clock reading the wall clock
func SystemClock() time.Time {
	return time.Now()
}
