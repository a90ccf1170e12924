package logging

import "time"

// SystemClock is the production Clock backed by the wall-clock time package.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
