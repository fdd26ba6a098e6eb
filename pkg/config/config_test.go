package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "token_bucket", cfg.RateLimit.Algorithm)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	assert.Equal(t, 1.0, cfg.RateLimit.RefillRate)
	assert.Equal(t, "exponential", cfg.Retry.Strategy)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.Retry.BaseDelay.Std())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
rate_limit:
  algorithm: sliding_window
  max_requests: 100
  window: 15m
retry:
  strategy: random
  max_attempts: 5
  min_delay: 500ms
  max_delay: 2s
logging:
  level: debug
metrics:
  enabled: true
  name: upstream
presets:
  rate_limit:
    slow:
      algorithm: token_bucket
      capacity: 2
      refill_rate: 0.5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "sliding_window", cfg.RateLimit.Algorithm)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window.Std())
	assert.Equal(t, "random", cfg.Retry.Strategy)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.MinDelay.Std())
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxDelay.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)

	require.Contains(t, cfg.Presets.RateLimit, "slow")
	assert.Equal(t, 0.5, cfg.Presets.RateLimit["slow"].RefillRate)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CALLGOV_LOG_LEVEL", "warn")
	t.Setenv("CALLGOV_RATE_CAPACITY", "42")
	t.Setenv("CALLGOV_RATE_REFILL_RATE", "2.5")
	t.Setenv("CALLGOV_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("CALLGOV_METRICS_ENABLED", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 42, cfg.RateLimit.Capacity)
	assert.Equal(t, 2.5, cfg.RateLimit.RefillRate)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CALLGOV_RATE_CAPACITY", "-3")
	t.Setenv("CALLGOV_RETRY_MAX_ATTEMPTS", "lots")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestValidateRateLimit(t *testing.T) {
	tests := []struct {
		name string
		cfg  RateLimitConfig
		ok   bool
	}{
		{"valid token bucket", RateLimitConfig{Algorithm: "token_bucket", Capacity: 5, RefillRate: 1}, true},
		{"zero capacity", RateLimitConfig{Algorithm: "token_bucket", Capacity: 0, RefillRate: 1}, false},
		{"negative refill rate", RateLimitConfig{Algorithm: "token_bucket", Capacity: 5, RefillRate: -1}, false},
		{"valid sliding window", RateLimitConfig{Algorithm: "sliding_window", MaxRequests: 3, Window: Duration(time.Minute)}, true},
		{"zero max requests", RateLimitConfig{Algorithm: "sliding_window", MaxRequests: 0, Window: Duration(time.Minute)}, false},
		{"zero window", RateLimitConfig{Algorithm: "sliding_window", MaxRequests: 3}, false},
		{"unknown algorithm", RateLimitConfig{Algorithm: "leaky_bucket"}, false},
		{"empty multi level", RateLimitConfig{Algorithm: "multi_level"}, false},
		{
			"multi level with invalid child",
			RateLimitConfig{Algorithm: "multi_level", Levels: []RateLimitConfig{
				{Algorithm: "token_bucket", Capacity: 0, RefillRate: 1},
			}},
			false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRetry(t *testing.T) {
	tests := []struct {
		name string
		cfg  RetryConfig
		ok   bool
	}{
		{"valid exponential", RetryConfig{Strategy: "exponential", MaxAttempts: 3, BaseDelay: Duration(time.Second), MaxDelay: Duration(time.Minute)}, true},
		{"max below base", RetryConfig{Strategy: "exponential", MaxAttempts: 3, BaseDelay: Duration(time.Minute), MaxDelay: Duration(time.Second)}, false},
		{"valid fixed", RetryConfig{Strategy: "fixed", MaxAttempts: 2, Delay: Duration(time.Second)}, true},
		{"fixed without delay", RetryConfig{Strategy: "fixed", MaxAttempts: 2}, false},
		{"valid random", RetryConfig{Strategy: "random", MaxAttempts: 2, MinDelay: Duration(time.Second), MaxDelay: Duration(2 * time.Second)}, true},
		{"random inverted range", RetryConfig{Strategy: "random", MaxAttempts: 2, MinDelay: Duration(2 * time.Second), MaxDelay: Duration(time.Second)}, false},
		{"negative attempts", RetryConfig{Strategy: "fixed", MaxAttempts: -1, Delay: Duration(time.Second)}, false},
		{"unknown strategy", RetryConfig{Strategy: "fibonacci"}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
