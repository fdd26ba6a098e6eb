package ratelimit

import (
	"context"
	"sync"
	"time"

	errs "callgov/pkg/errors"
)

// TokenBucket implements a continuously refilling token bucket rate limiter.
// Tokens accumulate at refillRate per second up to capacity; each admitted
// request consumes one token. Bursts up to the capacity are allowed while
// the long-run rate converges to refillRate.
type TokenBucket struct {
	capacity   float64   // Maximum number of tokens
	refillRate float64   // Tokens added per second
	tokens     float64   // Current number of tokens
	lastRefill time.Time // Last time tokens were replenished
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter. The bucket starts
// full. Capacity and refill rate must both be positive.
func NewTokenBucket(capacity int, refillRate float64) (*TokenBucket, error) {
	if capacity <= 0 {
		return nil, errs.NewConfigError("token bucket capacity must be positive, got %d", capacity)
	}
	if refillRate <= 0 {
		return nil, errs.NewConfigError("token bucket refill rate must be positive, got %g", refillRate)
	}

	return &TokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}, nil
}

// Allow checks if a request can proceed, consuming one token if so
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait() {
	_ = tb.WaitContext(context.Background())
}

// WaitContext blocks until a token is available or the context is done.
// The sleep between attempts happens with the lock released so concurrent
// callers can refill and acquire in the meantime.
func (tb *TokenBucket) WaitContext(ctx context.Context) error {
	for {
		tb.mu.Lock()
		now := time.Now()
		tb.refill(now)

		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}

		// Time until one full token accumulates
		needed := time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
		tb.mu.Unlock()

		if err := sleep(ctx, needed); err != nil {
			return err
		}
	}
}

// Reset refills the bucket to capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// Remaining returns the number of tokens currently available after refilling
func (tb *TokenBucket) Remaining() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())
	return tb.tokens
}

// refill replenishes tokens for the time elapsed since the last refill.
// Caller must hold the lock.
func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed <= 0 {
		return
	}

	tb.tokens += elapsed.Seconds() * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}
