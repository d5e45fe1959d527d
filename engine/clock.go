package engine

import "time"

// Clock abstracts time for the run loop so pacing can be tested
// deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that delivers the time after duration d.
	After(d time.Duration) <-chan time.Time
}

// SystemClock provides the real system time with monotonic clock readings.
type SystemClock struct{}

// NewSystemClock creates a new monotonic system clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// After waits for the duration to elapse on the system timer.
func (c *SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
