package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	errs "callgov/pkg/errors"
)

// Duration wraps time.Duration so YAML configs can use values like "500ms"
// or "2s" instead of raw nanosecond counts.
type Duration time.Duration

// UnmarshalYAML parses a duration from either a Go duration string or a
// plain number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		*d = Duration(time.Duration(seconds * float64(time.Second)))
		return nil
	}

	return fmt.Errorf("invalid duration %q", raw)
}

// MarshalYAML renders the duration in Go's string form
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the duration as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all configuration for the call governor
type Config struct {
	// Rate limiting applied before each governed call
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry behavior for failed calls
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Prometheus instrumentation
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Named limiter/retry configurations for custom preset registries
	Presets PresetsConfig `yaml:"presets" json:"presets"`
}

// RateLimitConfig describes a single rate limiter. Algorithm selects the
// implementation; only the fields for that algorithm are consulted.
type RateLimitConfig struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// Token bucket
	Capacity   int     `yaml:"capacity" json:"capacity"`
	RefillRate float64 `yaml:"refill_rate" json:"refill_rate"`

	// Sliding window
	MaxRequests int      `yaml:"max_requests" json:"max_requests"`
	Window      Duration `yaml:"window" json:"window"`

	// Multi-level composition, applied in order
	Levels []RateLimitConfig `yaml:"levels" json:"levels"`
}

// RetryConfig describes a retry handler
type RetryConfig struct {
	Strategy    string `yaml:"strategy" json:"strategy"`
	MaxAttempts int    `yaml:"max_attempts" json:"max_attempts"`

	// Exponential backoff
	BaseDelay Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay" json:"max_delay"`
	Jitter    bool     `yaml:"jitter" json:"jitter"`

	// Fixed interval
	Delay Duration `yaml:"delay" json:"delay"`

	// Random interval
	MinDelay Duration `yaml:"min_delay" json:"min_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// MetricsConfig holds Prometheus instrumentation settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Name    string `yaml:"name" json:"name"`
}

// PresetsConfig declares named configurations that extend the built-in
// preset registries
type PresetsConfig struct {
	RateLimit map[string]RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Retry     map[string]RetryConfig     `yaml:"retry" json:"retry"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		RateLimit: RateLimitConfig{
			Algorithm:  "token_bucket",
			Capacity:   10,
			RefillRate: 1.0,
		},
		Retry: RetryConfig{
			Strategy:    "exponential",
			MaxAttempts: 3,
			BaseDelay:   Duration(1 * time.Second),
			MaxDelay:    Duration(30 * time.Second),
			Jitter:      true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Name:    "default",
		},
	}
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the standard locations; finding no file there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// LoadFromEnv loads configuration overrides from environment variables,
// reading a .env file first if one is present
func (c *Config) LoadFromEnv() error {
	_ = godotenv.Load()

	if level := os.Getenv("CALLGOV_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if algorithm := os.Getenv("CALLGOV_RATE_ALGORITHM"); algorithm != "" {
		c.RateLimit.Algorithm = algorithm
	}
	if capacity := os.Getenv("CALLGOV_RATE_CAPACITY"); capacity != "" {
		if val, err := strconv.Atoi(capacity); err == nil && val > 0 {
			c.RateLimit.Capacity = val
		}
	}
	if rate := os.Getenv("CALLGOV_RATE_REFILL_RATE"); rate != "" {
		if val, err := strconv.ParseFloat(rate, 64); err == nil && val > 0 {
			c.RateLimit.RefillRate = val
		}
	}
	if strategy := os.Getenv("CALLGOV_RETRY_STRATEGY"); strategy != "" {
		c.Retry.Strategy = strategy
	}
	if attempts := os.Getenv("CALLGOV_RETRY_MAX_ATTEMPTS"); attempts != "" {
		if val, err := strconv.Atoi(attempts); err == nil && val >= 0 {
			c.Retry.MaxAttempts = val
		}
	}
	if enabled := os.Getenv("CALLGOV_METRICS_ENABLED"); enabled != "" {
		c.Metrics.Enabled = strings.ToLower(enabled) == "true"
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	locations := []string{
		".callgov.yaml",
		".callgov.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "callgov", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "callgov", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.Retry.Validate(); err != nil {
		return err
	}
	for name, preset := range c.Presets.RateLimit {
		if err := preset.Validate(); err != nil {
			return fmt.Errorf("rate limit preset %q: %w", name, err)
		}
	}
	for name, preset := range c.Presets.Retry {
		if err := preset.Validate(); err != nil {
			return fmt.Errorf("retry preset %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single rate limiter configuration
func (c *RateLimitConfig) Validate() error {
	switch c.Algorithm {
	case "token_bucket":
		if c.Capacity <= 0 {
			return errs.NewConfigError("token bucket capacity must be positive, got %d", c.Capacity)
		}
		if c.RefillRate <= 0 {
			return errs.NewConfigError("token bucket refill rate must be positive, got %g", c.RefillRate)
		}
	case "sliding_window":
		if c.MaxRequests <= 0 {
			return errs.NewConfigError("sliding window max requests must be positive, got %d", c.MaxRequests)
		}
		if c.Window.Std() <= 0 {
			return errs.NewConfigError("sliding window size must be positive, got %v", c.Window.Std())
		}
	case "multi_level":
		if len(c.Levels) == 0 {
			return errs.NewConfigError("multi level limiter requires at least one level")
		}
		for i := range c.Levels {
			if err := c.Levels[i].Validate(); err != nil {
				return err
			}
		}
	default:
		return errs.NewConfigError("unknown rate limit algorithm %q", c.Algorithm)
	}
	return nil
}

// Validate checks a single retry configuration
func (c *RetryConfig) Validate() error {
	if c.MaxAttempts < 0 {
		return errs.NewConfigError("max attempts must not be negative, got %d", c.MaxAttempts)
	}

	switch c.Strategy {
	case "exponential":
		if c.BaseDelay.Std() <= 0 {
			return errs.NewConfigError("base delay must be positive, got %v", c.BaseDelay.Std())
		}
		if c.MaxDelay.Std() < c.BaseDelay.Std() {
			return errs.NewConfigError("max delay %v is below base delay %v", c.MaxDelay.Std(), c.BaseDelay.Std())
		}
	case "fixed":
		if c.Delay.Std() <= 0 {
			return errs.NewConfigError("delay must be positive, got %v", c.Delay.Std())
		}
	case "random":
		if c.MinDelay.Std() <= 0 {
			return errs.NewConfigError("min delay must be positive, got %v", c.MinDelay.Std())
		}
		if c.MaxDelay.Std() < c.MinDelay.Std() {
			return errs.NewConfigError("max delay %v is below min delay %v", c.MaxDelay.Std(), c.MinDelay.Std())
		}
	default:
		return errs.NewConfigError("unknown retry strategy %q", c.Strategy)
	}
	return nil
}
