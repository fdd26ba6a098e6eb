package retry

import (
	"context"
	"fmt"
	"time"

	errs "callgov/pkg/errors"
	"callgov/pkg/logger"
)

// Handler drives retries of a fallible operation. All implementations share
// the same failure classification; they differ only in how the delay between
// attempts is computed.
type Handler interface {
	// ShouldRetry reports whether the given 1-based failed attempt should be
	// retried. It is false once attempt exceeds the handler's budget or when
	// the failure is classified non-retriable.
	ShouldRetry(attempt int, err error) bool
	// WaitTime returns the delay before the given 1-based retry attempt
	WaitTime(attempt int) time.Duration
	// Retry invokes op, re-invoking it with computed backoff until it
	// succeeds, the attempt budget is exhausted, or a non-retriable failure
	// occurs. The failure from the final attempt is returned unchanged.
	Retry(ctx context.Context, op Operation) error
}

// Option configures a handler
type Option func(*baseHandler)

// WithLogger sets the logger used for retry attempts
func WithLogger(log logger.Logger) Option {
	return func(h *baseHandler) {
		h.log = log
	}
}

// WithOnRetry registers a hook called before each retry sleep
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(h *baseHandler) {
		h.onRetry = fn
	}
}

// WithRetryIf overrides the failure classification predicate
func WithRetryIf(fn func(error) bool) Option {
	return func(h *baseHandler) {
		h.retryIf = fn
	}
}

// baseHandler implements the retry driver shared by every strategy
type baseHandler struct {
	maxAttempts int
	backoff     BackoffStrategy
	retryIf     func(error) bool
	onRetry     func(attempt int, err error, delay time.Duration)
	log         logger.Logger
}

func newBaseHandler(maxAttempts int, backoff BackoffStrategy, opts []Option) baseHandler {
	h := baseHandler{
		maxAttempts: maxAttempts,
		backoff:     backoff,
		retryIf:     errs.Retryable,
	}
	for _, opt := range opts {
		opt(&h)
	}
	if h.log == nil {
		h.log = logger.GetLogger()
	}
	return h
}

func (h *baseHandler) ShouldRetry(attempt int, err error) bool {
	if h.maxAttempts >= 0 && attempt > h.maxAttempts {
		return false
	}
	return h.retryIf(err)
}

func (h *baseHandler) WaitTime(attempt int) time.Duration {
	return h.backoff.NextDelay(attempt)
}

func (h *baseHandler) Retry(ctx context.Context, op Operation) error {
	if ctx == nil {
		ctx = context.Background()
	}

	attempt := 0
	for {
		err := op()
		if err == nil {
			if attempt > 0 {
				h.log.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempts": attempt + 1,
				})
			}
			return nil
		}

		attempt++

		if !h.ShouldRetry(attempt, err) {
			h.log.DebugWithFields("not retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			return err
		}

		delay := h.WaitTime(attempt)

		if h.onRetry != nil {
			h.onRetry(attempt, err, delay)
		}

		h.log.WarnWithFields("retrying operation", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": h.maxAttempts,
			"error":        err.Error(),
			"delay":        delay,
		})

		if werr := Wait(ctx, delay); werr != nil {
			return fmt.Errorf("retry cancelled: %w", werr)
		}
	}
}

// ExponentialBackoffHandler retries with exponentially growing delays,
// capped and optionally jittered
type ExponentialBackoffHandler struct {
	baseHandler
}

// NewExponentialBackoffHandler creates an exponential backoff retry handler.
// With jitter enabled each delay is perturbed by a uniform factor in
// [0.9, 1.1].
func NewExponentialBackoffHandler(maxAttempts int, baseDelay, maxDelay time.Duration, jitter bool, opts ...Option) (*ExponentialBackoffHandler, error) {
	if maxAttempts < 0 {
		return nil, errs.NewConfigError("max attempts must not be negative, got %d", maxAttempts)
	}
	if baseDelay <= 0 {
		return nil, errs.NewConfigError("base delay must be positive, got %v", baseDelay)
	}
	if maxDelay < baseDelay {
		return nil, errs.NewConfigError("max delay %v is below base delay %v", maxDelay, baseDelay)
	}

	jitterFactor := 0.0
	if jitter {
		jitterFactor = 0.1
	}

	backoff := &ExponentialBackoff{
		BaseDelay:    baseDelay,
		MaxDelay:     maxDelay,
		Multiplier:   2.0,
		JitterFactor: jitterFactor,
	}

	return &ExponentialBackoffHandler{newBaseHandler(maxAttempts, backoff, opts)}, nil
}

// FixedIntervalHandler retries with a constant delay between attempts
type FixedIntervalHandler struct {
	baseHandler
}

// NewFixedIntervalHandler creates a fixed interval retry handler
func NewFixedIntervalHandler(maxAttempts int, delay time.Duration, opts ...Option) (*FixedIntervalHandler, error) {
	if maxAttempts < 0 {
		return nil, errs.NewConfigError("max attempts must not be negative, got %d", maxAttempts)
	}
	if delay <= 0 {
		return nil, errs.NewConfigError("delay must be positive, got %v", delay)
	}

	return &FixedIntervalHandler{newBaseHandler(maxAttempts, &ConstantBackoff{Delay: delay}, opts)}, nil
}

// RandomIntervalHandler retries with delays sampled uniformly from a range
type RandomIntervalHandler struct {
	baseHandler
}

// NewRandomIntervalHandler creates a random interval retry handler
func NewRandomIntervalHandler(maxAttempts int, minDelay, maxDelay time.Duration, opts ...Option) (*RandomIntervalHandler, error) {
	if maxAttempts < 0 {
		return nil, errs.NewConfigError("max attempts must not be negative, got %d", maxAttempts)
	}
	if minDelay <= 0 {
		return nil, errs.NewConfigError("min delay must be positive, got %v", minDelay)
	}
	if maxDelay < minDelay {
		return nil, errs.NewConfigError("max delay %v is below min delay %v", maxDelay, minDelay)
	}

	backoff := &RandomIntervalBackoff{MinDelay: minDelay, MaxDelay: maxDelay}
	return &RandomIntervalHandler{newBaseHandler(maxAttempts, backoff, opts)}, nil
}
