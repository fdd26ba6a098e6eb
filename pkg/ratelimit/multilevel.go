package ratelimit

import (
	"context"

	errs "callgov/pkg/errors"
)

// MultiLevel composes several rate limiters under one call, modeling
// independent quota axes that must all be satisfied (for example a
// provider-wide limit and a per-endpoint limit).
type MultiLevel struct {
	limiters []Limiter
}

// NewMultiLevel creates a composite limiter from the given delegates,
// consulted in order
func NewMultiLevel(limiters ...Limiter) (*MultiLevel, error) {
	if len(limiters) == 0 {
		return nil, errs.NewConfigError("multi level limiter requires at least one delegate")
	}

	owned := make([]Limiter, len(limiters))
	copy(owned, limiters)
	return &MultiLevel{limiters: owned}, nil
}

// Allow returns true only if every delegate admits the request. Every
// delegate is consulted even after a rejection, so delegates earlier in the
// list may have consumed a token although the aggregate call reports
// failure. Callers that need strict all-or-nothing admission should size
// their levels so the outermost limit is the tightest.
func (ml *MultiLevel) Allow() bool {
	allowed := true
	for _, l := range ml.limiters {
		if !l.Allow() {
			allowed = false
		}
	}
	return allowed
}

// Wait blocks until every delegate has admitted the request
func (ml *MultiLevel) Wait() {
	_ = ml.WaitContext(context.Background())
}

// WaitContext waits on each delegate in list order, so the total wait is the
// sum of the individual waits
func (ml *MultiLevel) WaitContext(ctx context.Context) error {
	for _, l := range ml.limiters {
		if err := l.WaitContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset resets every delegate
func (ml *MultiLevel) Reset() {
	for _, l := range ml.limiters {
		l.Reset()
	}
}
