package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is admitted under the current rate limit
	// without blocking
	Allow() bool
	// Wait blocks until the rate limit admits another request
	Wait()
	// WaitContext blocks until the rate limit admits another request or the
	// context is done, in which case it returns the context's error
	WaitContext(ctx context.Context) error
	// Reset reinitializes the limiter's mutable state
	Reset()
}

// sleep waits for the given duration or until the context is done. The
// caller must not hold the limiter's lock while sleeping.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
