package services

import (
	"context"
	"time"
)

// Clock abstracts time for services that read wall-clock time or pause
// (simulated reply and search latency). Tests substitute a fake to avoid
// real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock implements Clock using the system clock.
type realClock struct{}

// NewClock returns a Clock backed by the system clock.
func NewClock() Clock {
	return &realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
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

// Ensure realClock implements Clock at compile time.
var _ Clock = (*realClock)(nil)
