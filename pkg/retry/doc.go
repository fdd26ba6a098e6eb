// Package retry provides backoff and retry coordination for transient
// failures when calling an external, rate-limited service.
//
// Features:
//   - Multiple backoff strategies (exponential, fixed, random interval)
//   - Jitter to avoid thundering herd problems
//   - Context support for cancellation
//   - Shared failure classification via the errors package
//   - Named presets for common retry aggressiveness tiers
//
// Basic usage:
//
//	handler, err := retry.NewExponentialBackoffHandler(3, time.Second, 30*time.Second, true)
//	if err != nil {
//		return err
//	}
//
//	err = handler.Retry(ctx, func() error {
//		return client.Complete(prompt)
//	})
//
//	// Preset lookup
//	handler, err := retry.DefaultRegistry().Get("aggressive")
//
//	// Decorator form
//	guarded := retry.Wrap(handler, operation)
//	err = guarded()
//
// Failure handling:
//
// A failure is retried iff it is a transport-layer failure (connection
// error or timeout), carries an HTTP status in {429, 500, 502, 503, 504},
// or is tagged rate_limit, server_error, timeout, or network. Anything else
// propagates immediately. When attempts are exhausted the failure from the
// final attempt is returned unchanged, never a synthetic wrapper.
package retry
