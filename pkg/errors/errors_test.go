package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindRateLimit, true},
		{KindServerError, true},
		{KindTimeout, true},
		{KindNetwork, true},
		{KindAuth, false},
		{KindInvalidRequest, false},
		{KindNotFound, false},
		{KindUnknown, false},
	}

	for _, test := range tests {
		if got := IsRetryable(test.kind); got != test.retryable {
			t.Errorf("IsRetryable(%s) = %v, want %v", test.kind, got, test.retryable)
		}
	}
}

func TestRetryableStatusCode(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504, 599}
	for _, code := range retryable {
		if !RetryableStatusCode(code) {
			t.Errorf("expected status %d to be retryable", code)
		}
	}

	notRetryable := []int{200, 400, 401, 403, 404, 422}
	for _, code := range notRetryable {
		if RetryableStatusCode(code) {
			t.Errorf("expected status %d to not be retryable", code)
		}
	}
}

func TestFromStatusCode(t *testing.T) {
	tests := []struct {
		code int
		kind Kind
	}{
		{429, KindRateLimit},
		{500, KindServerError},
		{502, KindServerError},
		{504, KindTimeout},
		{401, KindAuth},
		{404, KindNotFound},
		{400, KindInvalidRequest},
		{418, KindUnknown},
	}

	for _, test := range tests {
		err := FromStatusCode(test.code, "boom")
		if err.Kind != test.kind {
			t.Errorf("FromStatusCode(%d) kind = %s, want %s", test.code, err.Kind, test.kind)
		}
		if err.Code != test.code {
			t.Errorf("FromStatusCode(%d) code = %d", test.code, err.Code)
		}
	}
}

func TestRetryableClassifiedErrors(t *testing.T) {
	if !Retryable(New(KindRateLimit, "quota exceeded")) {
		t.Error("rate limit errors should be retryable")
	}
	if Retryable(New(KindAuth, "bad token")) {
		t.Error("auth errors should not be retryable")
	}

	// Non-retryable kind but retryable status code on the same error.
	mixed := &Error{Kind: KindUnknown, Code: 503, Message: "overloaded"}
	if !Retryable(mixed) {
		t.Error("status 503 should make the error retryable")
	}
}

func TestRetryableTransportErrors(t *testing.T) {
	if !Retryable(timeoutError{}) {
		t.Error("net timeout errors should be retryable")
	}
	if !Retryable(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)) {
		t.Error("connection refused should be retryable")
	}
	if !Retryable(&net.OpError{Op: "read", Err: errors.New("reset")}) {
		t.Error("net.OpError should be retryable")
	}
}

func TestRetryableContextErrors(t *testing.T) {
	if Retryable(context.Canceled) {
		t.Error("context.Canceled should not be retryable")
	}
	if Retryable(context.DeadlineExceeded) {
		t.Error("context.DeadlineExceeded should not be retryable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	if Retryable(fmt.Errorf("request aborted: %w", ctx.Err())) {
		t.Error("wrapped deadline errors should not be retryable")
	}
}

func TestRetryableDefaultsToFalse(t *testing.T) {
	if Retryable(errors.New("something unexpected")) {
		t.Error("unclassified errors should not be retryable")
	}
	if Retryable(nil) {
		t.Error("nil should not be retryable")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(KindServerError, "upstream failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match its cause")
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(timeoutError{}); got != KindTimeout {
		t.Errorf("Classify(timeout) = %s", got)
	}
	if got := Classify(fmt.Errorf("%w", syscall.ECONNRESET)); got != KindNetwork {
		t.Errorf("Classify(ECONNRESET) = %s", got)
	}
	if got := Classify(New(KindRateLimit, "slow down")); got != KindRateLimit {
		t.Errorf("Classify(*Error) = %s", got)
	}
	if got := Classify(errors.New("mystery")); got != KindUnknown {
		t.Errorf("Classify(unknown) = %s", got)
	}
}
