package ratelimit

import (
	"testing"
	"time"
)

func TestInstrumentPassesThrough(t *testing.T) {
	tb, err := NewTokenBucket(2, 0.001)
	if err != nil {
		t.Fatalf("NewTokenBucket failed: %v", err)
	}

	limiter := Instrument("test_bucket", tb)

	if !limiter.Allow() {
		t.Error("instrumented limiter should admit while tokens remain")
	}
	if !limiter.Allow() {
		t.Error("instrumented limiter should admit while tokens remain")
	}
	if limiter.Allow() {
		t.Error("instrumented limiter should reject when the bucket is empty")
	}

	limiter.Reset()
	if !limiter.Allow() {
		t.Error("reset should pass through to the wrapped limiter")
	}
}

func TestInstrumentWait(t *testing.T) {
	sw, err := NewSlidingWindow(1, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSlidingWindow failed: %v", err)
	}

	limiter := Instrument("test_window", sw)

	start := time.Now()
	limiter.Wait()
	limiter.Wait()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("instrumented wait should still block, elapsed %v", elapsed)
	}
}
