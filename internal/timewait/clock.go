package timewait

import "time"

// Clock abstracts the wall clock so the polling loop can be tested
// without real sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the Clock used outside of tests.
type SystemClock struct{}

var _ Clock = SystemClock{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep suspends the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
