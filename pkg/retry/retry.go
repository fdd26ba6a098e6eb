package retry

import (
	"context"
)

// Operation is a function that performs an operation that might need retrying
type Operation func() error

// OperationWithResult is a function that returns a result and might need
// retrying
type OperationWithResult[T any] func() (T, error)

// Do executes an operation under the given handler's retry policy
func Do(ctx context.Context, op Operation, h Handler) error {
	return h.Retry(ctx, op)
}

// DoWithResult executes an operation that returns a result under the given
// handler's retry policy
func DoWithResult[T any](ctx context.Context, op OperationWithResult[T], h Handler) (T, error) {
	var result T

	err := h.Retry(ctx, func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})

	return result, err
}

// Wrap decorates an operation so every invocation runs under the handler's
// retry policy
func Wrap(h Handler, op Operation) Operation {
	return func() error {
		return h.Retry(context.Background(), op)
	}
}

// WrapContext is like Wrap but threads the given context through each
// invocation
func WrapContext(ctx context.Context, h Handler, op Operation) Operation {
	return func() error {
		return h.Retry(ctx, op)
	}
}

// WrapWithResult decorates a result-returning operation so every invocation
// runs under the handler's retry policy
func WrapWithResult[T any](h Handler, op OperationWithResult[T]) OperationWithResult[T] {
	return func() (T, error) {
		return DoWithResult(context.Background(), op, h)
	}
}
