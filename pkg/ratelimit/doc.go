// Package ratelimit provides admission control for calls to an external,
// rate-limited service.
//
// Available Implementations:
//
// Token Bucket:
//   - Tokens accumulate continuously at a fixed rate up to a capacity
//   - Suitable for burst traffic with a bounded long-run rate
//   - Default implementation used by the governor
//
// Sliding Window:
//   - Tracks request timestamps within a trailing time window
//   - Enforces a hard count over any interval of the window's length
//
// Multi Level:
//   - Composes several limiters that must all admit a request
//   - Models independent quota axes (provider-wide plus per-endpoint)
//
// Interface:
//
// All rate limiters implement the Limiter interface:
//   - Allow() bool - Check if a request is admitted without blocking
//   - Wait() - Block until a request is admitted
//   - WaitContext(ctx) error - Block with cancellation
//   - Reset() - Reset the limiter state
//
// Usage:
//
//	// Token bucket: bursts of 10, refilling 1 token/second
//	limiter, err := ratelimit.NewTokenBucket(10, 1.0)
//
//	// Sliding window: 100 requests per 15 minutes
//	limiter, err := ratelimit.NewSlidingWindow(100, 15*time.Minute)
//
//	// Named preset
//	limiter, err := ratelimit.DefaultRegistry().Get("standard")
//
//	limiter.Wait()
//	// Proceed with the governed call
package ratelimit
