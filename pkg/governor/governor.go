package governor

import (
	"context"

	"callgov/pkg/config"
	"callgov/pkg/logger"
	"callgov/pkg/ratelimit"
	"callgov/pkg/retry"
)

// Governor throttles and resiliently retries calls to an external,
// rate-limited service. Every attempt, including retries, passes admission
// control before the operation runs.
type Governor struct {
	limiter ratelimit.Limiter
	handler retry.Handler
	log     logger.Logger
}

// Option configures a Governor
type Option func(*Governor)

// WithLogger sets the logger used by the governor
func WithLogger(log logger.Logger) Option {
	return func(g *Governor) {
		g.log = log
	}
}

// New creates a governor from an explicit limiter and retry handler
func New(limiter ratelimit.Limiter, handler retry.Handler, opts ...Option) *Governor {
	g := &Governor{
		limiter: limiter,
		handler: handler,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.GetLogger()
	}
	return g
}

// FromConfig builds a governor from a full configuration, instrumenting the
// limiter with Prometheus metrics when enabled
func FromConfig(cfg *config.Config, opts ...Option) (*Governor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled {
		limiter = ratelimit.Instrument(cfg.Metrics.Name, limiter)
	}

	handler, err := retry.New(cfg.Retry)
	if err != nil {
		return nil, err
	}

	return New(limiter, handler, opts...), nil
}

// FromPresets builds a governor from named entries in the built-in limiter
// and retry registries. An unknown name on either axis is a configuration
// error.
func FromPresets(limiterPreset, retryPreset string, opts ...Option) (*Governor, error) {
	limiter, err := ratelimit.DefaultRegistry().Get(limiterPreset)
	if err != nil {
		return nil, err
	}

	handler, err := retry.DefaultRegistry().Get(retryPreset)
	if err != nil {
		return nil, err
	}

	return New(limiter, handler, opts...), nil
}

// Execute runs op under the governor: admission control before every
// attempt, retries with backoff on transient failures. The failure from the
// final attempt is returned unchanged.
func (g *Governor) Execute(ctx context.Context, op retry.Operation) error {
	guarded := func() error {
		if err := g.limiter.WaitContext(ctx); err != nil {
			return err
		}
		return op()
	}

	return g.handler.Retry(ctx, guarded)
}

// Limiter returns the governor's rate limiter
func (g *Governor) Limiter() ratelimit.Limiter {
	return g.limiter
}

// Handler returns the governor's retry handler
func (g *Governor) Handler() retry.Handler {
	return g.handler
}

// Reset reinitializes the governor's rate limiter state
func (g *Governor) Reset() {
	g.limiter.Reset()
}

// ExecuteWithResult runs a result-returning operation under the governor
func ExecuteWithResult[T any](ctx context.Context, g *Governor, op retry.OperationWithResult[T]) (T, error) {
	var result T

	err := g.Execute(ctx, func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})

	return result, err
}
