package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissionChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callgov_ratelimit_checks_total",
			Help: "Total number of admission checks performed",
		},
		[]string{"limiter", "result"},
	)

	waitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "callgov_ratelimit_wait_seconds",
			Help:    "Time spent blocked waiting for admission",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"limiter"},
	)
)

// instrumentedLimiter decorates a Limiter with Prometheus metrics
type instrumentedLimiter struct {
	name string
	next Limiter
}

// Instrument wraps a limiter so admission checks and wait durations are
// recorded under the given limiter name. The wrapped limiter is unchanged.
func Instrument(name string, next Limiter) Limiter {
	return &instrumentedLimiter{name: name, next: next}
}

func (il *instrumentedLimiter) Allow() bool {
	allowed := il.next.Allow()

	result := "allowed"
	if !allowed {
		result = "rejected"
	}
	admissionChecks.WithLabelValues(il.name, result).Inc()

	return allowed
}

func (il *instrumentedLimiter) Wait() {
	_ = il.WaitContext(context.Background())
}

func (il *instrumentedLimiter) WaitContext(ctx context.Context) error {
	start := time.Now()
	err := il.next.WaitContext(ctx)
	waitDuration.WithLabelValues(il.name).Observe(time.Since(start).Seconds())

	result := "allowed"
	if err != nil {
		result = "cancelled"
	}
	admissionChecks.WithLabelValues(il.name, result).Inc()

	return err
}

func (il *instrumentedLimiter) Reset() {
	il.next.Reset()
}
