package engine

import "time"

// Clock supplies the wall-clock time used for timestamps and for deciding
// which day is "today" when computing overdue tasks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
