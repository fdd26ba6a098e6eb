package ratelimit

import (
	"sort"
	"time"

	"callgov/pkg/config"
	errs "callgov/pkg/errors"
)

// Algorithm names accepted by New
const (
	AlgorithmTokenBucket   = "token_bucket"
	AlgorithmSlidingWindow = "sliding_window"
	AlgorithmMultiLevel    = "multi_level"
)

// New constructs a rate limiter from its configuration
func New(cfg config.RateLimitConfig) (Limiter, error) {
	switch cfg.Algorithm {
	case AlgorithmTokenBucket:
		return NewTokenBucket(cfg.Capacity, cfg.RefillRate)
	case AlgorithmSlidingWindow:
		return NewSlidingWindow(cfg.MaxRequests, cfg.Window.Std())
	case AlgorithmMultiLevel:
		if len(cfg.Levels) == 0 {
			return nil, errs.NewConfigError("multi level limiter requires at least one level")
		}
		levels := make([]Limiter, 0, len(cfg.Levels))
		for _, levelCfg := range cfg.Levels {
			level, err := New(levelCfg)
			if err != nil {
				return nil, err
			}
			levels = append(levels, level)
		}
		return NewMultiLevel(levels...)
	default:
		return nil, errs.NewConfigError("unknown rate limit algorithm %q", cfg.Algorithm)
	}
}

// Registry is an immutable lookup table of named limiter configurations.
// Each Get constructs a fresh limiter so callers never share token state by
// accident.
type Registry struct {
	presets map[string]config.RateLimitConfig
}

// NewRegistry builds a registry from the given preset configurations. The
// map is copied; later changes to it do not affect the registry.
func NewRegistry(presets map[string]config.RateLimitConfig) *Registry {
	owned := make(map[string]config.RateLimitConfig, len(presets))
	for name, cfg := range presets {
		owned[name] = cfg
	}
	return &Registry{presets: owned}
}

// Get constructs a limiter from the named preset. An unknown name is a
// configuration error.
func (r *Registry) Get(name string) (Limiter, error) {
	cfg, ok := r.presets[name]
	if !ok {
		return nil, errs.NewConfigError("unknown rate limit preset %q", name)
	}
	return New(cfg)
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

// DefaultRegistry returns the built-in quota tiers. The tiers mirror the
// request quotas of typical LLM API plans.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]config.RateLimitConfig{
		"free_tier": {
			Algorithm:   AlgorithmSlidingWindow,
			MaxRequests: 20,
			Window:      config.Duration(time.Minute),
		},
		"standard": {
			Algorithm:  AlgorithmTokenBucket,
			Capacity:   10,
			RefillRate: 1.0,
		},
		"premium": {
			Algorithm:  AlgorithmTokenBucket,
			Capacity:   50,
			RefillRate: 10.0,
		},
		"burst": {
			Algorithm: AlgorithmMultiLevel,
			Levels: []config.RateLimitConfig{
				{
					Algorithm:  AlgorithmTokenBucket,
					Capacity:   100,
					RefillRate: 10.0,
				},
				{
					Algorithm:   AlgorithmSlidingWindow,
					MaxRequests: 500,
					Window:      config.Duration(time.Minute),
				},
			},
		},
	})
}
