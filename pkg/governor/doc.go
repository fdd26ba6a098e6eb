// Package governor combines a rate limiter and a retry handler into a single
// call-governor for an external, fallible, rate-limited service.
//
// The governor waits for admission before every attempt of the governed
// operation, so retries respect the same quota as first tries.
//
// Usage:
//
//	gov, err := governor.FromPresets("standard", "aggressive")
//	if err != nil {
//		return err
//	}
//
//	err = gov.Execute(ctx, func() error {
//		return client.Complete(prompt)
//	})
//
//	// With a result
//	resp, err := governor.ExecuteWithResult(ctx, gov, func() (*Response, error) {
//		return client.Chat(messages)
//	})
package governor
