package retry

import (
	"sort"
	"time"

	"callgov/pkg/config"
	errs "callgov/pkg/errors"
)

// Strategy names accepted by New
const (
	StrategyExponential = "exponential"
	StrategyFixed       = "fixed"
	StrategyRandom      = "random"
)

// New constructs a retry handler from its configuration
func New(cfg config.RetryConfig, opts ...Option) (Handler, error) {
	switch cfg.Strategy {
	case StrategyExponential:
		return NewExponentialBackoffHandler(cfg.MaxAttempts, cfg.BaseDelay.Std(), cfg.MaxDelay.Std(), cfg.Jitter, opts...)
	case StrategyFixed:
		return NewFixedIntervalHandler(cfg.MaxAttempts, cfg.Delay.Std(), opts...)
	case StrategyRandom:
		return NewRandomIntervalHandler(cfg.MaxAttempts, cfg.MinDelay.Std(), cfg.MaxDelay.Std(), opts...)
	default:
		return nil, errs.NewConfigError("unknown retry strategy %q", cfg.Strategy)
	}
}

// Registry is an immutable lookup table of named retry configurations
type Registry struct {
	presets map[string]config.RetryConfig
}

// NewRegistry builds a registry from the given preset configurations. The
// map is copied; later changes to it do not affect the registry.
func NewRegistry(presets map[string]config.RetryConfig) *Registry {
	owned := make(map[string]config.RetryConfig, len(presets))
	for name, cfg := range presets {
		owned[name] = cfg
	}
	return &Registry{presets: owned}
}

// Get constructs a handler from the named preset. An unknown name is a
// configuration error.
func (r *Registry) Get(name string, opts ...Option) (Handler, error) {
	cfg, ok := r.presets[name]
	if !ok {
		return nil, errs.NewConfigError("unknown retry preset %q", name)
	}
	return New(cfg, opts...)
}

// Names returns the registered preset names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns the built-in retry aggressiveness tiers
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]config.RetryConfig{
		"gentle": {
			Strategy:    StrategyFixed,
			MaxAttempts: 2,
			Delay:       config.Duration(1 * time.Second),
		},
		"standard": {
			Strategy:    StrategyExponential,
			MaxAttempts: 3,
			BaseDelay:   config.Duration(1 * time.Second),
			MaxDelay:    config.Duration(30 * time.Second),
			Jitter:      true,
		},
		"aggressive": {
			Strategy:    StrategyExponential,
			MaxAttempts: 5,
			BaseDelay:   config.Duration(500 * time.Millisecond),
			MaxDelay:    config.Duration(10 * time.Second),
			Jitter:      true,
		},
		"patient": {
			Strategy:    StrategyRandom,
			MaxAttempts: 4,
			MinDelay:    config.Duration(2 * time.Second),
			MaxDelay:    config.Duration(10 * time.Second),
		},
	})
}
