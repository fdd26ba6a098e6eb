package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind classifies a failure from the governed service
type Kind string

const (
	KindRateLimit      Kind = "rate_limit"
	KindServerError    Kind = "server_error"
	KindTimeout        Kind = "timeout"
	KindNetwork        Kind = "network"
	KindAuth           Kind = "auth"
	KindInvalidRequest Kind = "invalid_request"
	KindNotFound       Kind = "not_found"
	KindUnknown        Kind = "unknown"
)

// Error represents a classified failure with an optional HTTP-style status code
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error wrapping an underlying cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewConfigError creates the error used for invalid construction parameters
// and unknown preset names. Configuration errors are never retried.
func NewConfigError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// FromStatusCode creates a classified error from an HTTP-style status code
func FromStatusCode(code int, message string) *Error {
	return &Error{Kind: kindForStatusCode(code), Code: code, Message: message}
}

func kindForStatusCode(code int) Kind {
	switch code {
	case 429:
		return KindRateLimit
	case 408, 504:
		return KindTimeout
	case 500, 502, 503:
		return KindServerError
	case 401, 403:
		return KindAuth
	case 404:
		return KindNotFound
	case 400, 422:
		return KindInvalidRequest
	default:
		if code >= 500 {
			return KindServerError
		}
		return KindUnknown
	}
}

// IsRetryable reports whether an error kind should be retried
func IsRetryable(kind Kind) bool {
	switch kind {
	case KindRateLimit, KindServerError, KindTimeout, KindNetwork:
		return true
	default:
		return false
	}
}

// RetryableStatusCode reports whether an HTTP status code indicates a
// retryable failure
func RetryableStatusCode(code int) bool {
	switch code {
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504: // Server errors
		return true
	case 401, 403, 404: // Client errors that won't change
		return false
	default:
		return code >= 500
	}
}

// Classify determines the failure kind of an arbitrary error. Classified
// errors report their own kind; transport-layer errors are recognized by
// probing the standard net and syscall error types.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindUnknown
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return KindNetwork
	}

	var operr *net.OpError
	if errors.As(err, &operr) {
		return KindNetwork
	}

	return KindUnknown
}

// Retryable reports whether an arbitrary error should be retried.
//
// A failure is retryable iff it is a transport-layer failure (connection
// error or timeout), carries a retryable HTTP status code, or is classified
// as rate_limit, server_error, timeout, or network. Context cancellation is
// never retryable: the caller gave up.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var cerr *Error
	if errors.As(err, &cerr) {
		if IsRetryable(cerr.Kind) {
			return true
		}
		if cerr.Code != 0 {
			return RetryableStatusCode(cerr.Code)
		}
		return false
	}

	return IsRetryable(Classify(err))
}
