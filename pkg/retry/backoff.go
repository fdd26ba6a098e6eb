package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines the interface for computing retry delays
type BackoffStrategy interface {
	// NextDelay returns the delay before the given 1-based attempt
	NextDelay(attempt int) time.Duration
	// Reset resets the backoff strategy to its initial state
	Reset()
}

// ExponentialBackoff implements exponential backoff with optional jitter
type ExponentialBackoff struct {
	// BaseDelay is the delay before the first retry
	BaseDelay time.Duration
	// MaxDelay caps the computed delay
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay grows per attempt
	Multiplier float64
	// JitterFactor perturbs the delay by a uniform factor in
	// [1-JitterFactor, 1+JitterFactor] to desynchronize concurrent retriers
	JitterFactor float64
}

// DefaultExponentialBackoff returns a backoff with sensible defaults
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// NextDelay calculates the next delay with exponential growth, capping, and
// jitter
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))

	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor
		delay += (rand.Float64() * 2 * jitter) - jitter
	}

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// Reset is a no-op; the strategy is stateless
func (eb *ExponentialBackoff) Reset() {}

// ConstantBackoff waits the same delay before every retry
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns the constant delay
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// Reset is a no-op; the strategy is stateless
func (cb *ConstantBackoff) Reset() {}

// RandomIntervalBackoff samples each delay independently and uniformly from
// [MinDelay, MaxDelay]
type RandomIntervalBackoff struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NextDelay returns a fresh uniform sample from the configured interval
func (rb *RandomIntervalBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	spread := rb.MaxDelay - rb.MinDelay
	if spread <= 0 {
		return rb.MinDelay
	}
	return rb.MinDelay + time.Duration(rand.Float64()*float64(spread))
}

// Reset is a no-op; the strategy is stateless
func (rb *RandomIntervalBackoff) Reset() {}

// Wait waits for the specified duration or until the context is cancelled
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
