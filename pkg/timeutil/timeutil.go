package timeutil

import (
	"context"
	"time"
)

// Sleeper blocks the caller for a duration. Retry loops depend on it instead
// of time.Sleep so tests can observe the delays without waiting for them.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper sleeps on the wall clock and wakes up early when ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FileStamp formats t the way recording and report file names carry it,
// e.g. 20250131_142501.
func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}
