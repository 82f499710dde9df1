package timeutil

import "time"

const FileStampLayout = "20060102_150405"

// Clock returns the current time. Components that name files after the
// current time take a Clock so the name is predictable under test.
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time {
	return time.Now()
}
