package ratelimit

import (
	"context"
	"sync"
	"time"

	errs "callgov/pkg/errors"
)

// SlidingWindow implements a sliding window rate limiter. It admits at most
// maxRequests requests within any trailing windowSize interval, tracking the
// timestamp of every admitted request in insertion order.
type SlidingWindow struct {
	windowSize  time.Duration
	maxRequests int
	requests    []time.Time // oldest first
	mu          sync.Mutex
}

// NewSlidingWindow creates a new sliding window rate limiter. Max requests
// and window size must both be positive; a zero-request window would reject
// forever and is treated as a configuration error.
func NewSlidingWindow(maxRequests int, windowSize time.Duration) (*SlidingWindow, error) {
	if maxRequests <= 0 {
		return nil, errs.NewConfigError("sliding window max requests must be positive, got %d", maxRequests)
	}
	if windowSize <= 0 {
		return nil, errs.NewConfigError("sliding window size must be positive, got %v", windowSize)
	}

	return &SlidingWindow{
		windowSize:  windowSize,
		maxRequests: maxRequests,
		requests:    make([]time.Time, 0, maxRequests),
	}, nil
}

// Allow checks if a request can proceed, recording its timestamp if so
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	sw.prune(now)

	if len(sw.requests) < sw.maxRequests {
		sw.requests = append(sw.requests, now)
		return true
	}

	return false
}

// Wait blocks until a request is admitted
func (sw *SlidingWindow) Wait() {
	_ = sw.WaitContext(context.Background())
}

// WaitContext blocks until a request is admitted or the context is done.
// On rejection it sleeps, with the lock released, until the oldest recorded
// request ages out of the window, then tries again.
func (sw *SlidingWindow) WaitContext(ctx context.Context) error {
	for {
		sw.mu.Lock()
		now := time.Now()
		sw.prune(now)

		if len(sw.requests) < sw.maxRequests {
			sw.requests = append(sw.requests, now)
			sw.mu.Unlock()
			return nil
		}

		needed := sw.requests[0].Add(sw.windowSize).Sub(now)
		sw.mu.Unlock()

		if needed < 0 {
			needed = 0
		}
		if err := sleep(ctx, needed); err != nil {
			return err
		}
	}
}

// Reset clears all recorded requests
func (sw *SlidingWindow) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.requests = sw.requests[:0]
}

// prune drops timestamps that have aged out of the window, oldest first.
// Caller must hold the lock.
func (sw *SlidingWindow) prune(now time.Time) {
	cutoff := now.Add(-sw.windowSize)

	i := 0
	for i < len(sw.requests) && !sw.requests[i].After(cutoff) {
		i++
	}

	if i > 0 {
		copy(sw.requests, sw.requests[i:])
		sw.requests = sw.requests[:len(sw.requests)-i]
	}
}
