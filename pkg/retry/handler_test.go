package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/retry"
)

// mockError is a mock implementation of failure.ClassifiedError for testing
type mockError struct {
	msg       string
	retryable bool
	severity  failure.Severity
}

func (m *mockError) Error() string {
	return m.msg
}

func (m *mockError) Severity() failure.Severity {
	return m.severity
}

func (m *mockError) IsRetryable() bool {
	return m.retryable
}

// plainError has no retryability information at all
type plainError struct{}

func (p *plainError) Error() string              { return "plain" }
func (p *plainError) Severity() failure.Severity { return failure.SeverityRecoverable }

// recordingSleeper records requested delays instead of sleeping
type recordingSleeper struct {
	delays []time.Duration
	err    error
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return r.err
}

func transientErr() *mockError {
	return &mockError{msg: "transient error", retryable: true, severity: failure.SeverityRecoverable}
}

// TestRetry_SuccessOnFirstAttempt verifies that a successful function returns immediately
func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	callCount := 0
	fn := func() (string, failure.ClassifiedError) {
		callCount++
		return "success", nil
	}
	sleeper := &recordingSleeper{}

	result := retry.Retry(context.Background(), retry.NewRetryParam(5*time.Second, 3), sleeper, fn)

	if result.IsFailure() {
		t.Fatalf("expected no error, got: %v", result.Err())
	}
	if result.Value() != "success" {
		t.Fatalf("expected 'success', got: %s", result.Value())
	}
	if result.Attempts() != 1 {
		t.Fatalf("expected 1 attempt, got: %d", result.Attempts())
	}
	if callCount != 1 {
		t.Fatalf("expected 1 call, got: %d", callCount)
	}
	if len(sleeper.delays) != 0 {
		t.Fatalf("expected no sleeps, got: %v", sleeper.delays)
	}
}

func TestRetry_PassParameter(t *testing.T) {
	toPrint := "Hello"
	fn := func() (string, failure.ClassifiedError) {
		return fmt.Sprintf("%s, world!", toPrint), nil
	}

	result := retry.Retry(context.Background(), retry.NewRetryParam(0, 3), &recordingSleeper{}, fn)

	if result.Value() != "Hello, world!" {
		t.Fatalf("expected 'Hello, world!', got: %s", result.Value())
	}
}

// TestRetry_SuccessAfterRetries verifies k failures then success gives k+1 attempts and k sleeps
func TestRetry_SuccessAfterRetries(t *testing.T) {
	for k := 0; k < 4; k++ {
		t.Run(fmt.Sprintf("fail %d times", k), func(t *testing.T) {
			callCount := 0
			fn := func() (int, failure.ClassifiedError) {
				callCount++
				if callCount <= k {
					return 0, transientErr()
				}
				return 42, nil
			}
			sleeper := &recordingSleeper{}
			delay := 5 * time.Second

			result := retry.Retry(context.Background(), retry.NewRetryParam(delay, 5), sleeper, fn)

			if result.IsFailure() {
				t.Fatalf("expected success, got: %v", result.Err())
			}
			if result.Value() != 42 {
				t.Fatalf("expected 42, got %d", result.Value())
			}
			if result.Attempts() != k+1 {
				t.Fatalf("expected %d attempts, got %d", k+1, result.Attempts())
			}
			if len(sleeper.delays) != k {
				t.Fatalf("expected %d sleeps, got %d", k, len(sleeper.delays))
			}
			for i, d := range sleeper.delays {
				if d != delay {
					t.Errorf("sleep %d: expected %v, got %v", i, delay, d)
				}
			}
		})
	}
}

// TestRetry_ExhaustedAttempts verifies that always failing tasks run MaxAttempts times
func TestRetry_ExhaustedAttempts(t *testing.T) {
	callCount := 0
	fn := func() (string, failure.ClassifiedError) {
		callCount++
		return "", transientErr()
	}
	sleeper := &recordingSleeper{}

	result := retry.Retry(context.Background(), retry.NewRetryParam(time.Second, 3), sleeper, fn)

	if !result.IsFailure() {
		t.Fatal("expected failure")
	}
	if callCount != 3 {
		t.Fatalf("expected 3 calls, got %d", callCount)
	}
	if result.Attempts() != 3 {
		t.Fatalf("expected 3 attempts, got %d", result.Attempts())
	}
	if len(sleeper.delays) != 2 {
		t.Fatalf("expected 2 sleeps, got %d", len(sleeper.delays))
	}

	var retryErr *retry.RetryError
	if !errors.As(result.Err(), &retryErr) {
		t.Fatalf("expected RetryError, got %T", result.Err())
	}
	if retryErr.Cause != retry.ErrExhaustedAttempts {
		t.Errorf("expected cause %q, got %q", retry.ErrExhaustedAttempts, retryErr.Cause)
	}

	// the last task error stays reachable through the chain
	var mockErr *mockError
	if !errors.As(result.Err(), &mockErr) {
		t.Fatal("expected last mockError to be reachable via errors.As")
	}
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	callCount := 0
	fatal := &mockError{msg: "fatal", retryable: false, severity: failure.SeverityFatal}
	fn := func() (string, failure.ClassifiedError) {
		callCount++
		return "", fatal
	}
	sleeper := &recordingSleeper{}

	result := retry.Retry(context.Background(), retry.NewRetryParam(time.Second, 5), sleeper, fn)

	if callCount != 1 {
		t.Fatalf("expected 1 call, got %d", callCount)
	}
	if result.Err() != fatal {
		t.Fatalf("expected the task error to be returned as-is, got %v", result.Err())
	}
	if len(sleeper.delays) != 0 {
		t.Fatalf("expected no sleeps, got %d", len(sleeper.delays))
	}
}

func TestRetry_UnknownRetryabilityIsRetried(t *testing.T) {
	callCount := 0
	fn := func() (string, failure.ClassifiedError) {
		callCount++
		return "", &plainError{}
	}

	retry.Retry(context.Background(), retry.NewRetryParam(0, 2), &recordingSleeper{}, fn)

	if callCount != 2 {
		t.Fatalf("expected 2 calls, got %d", callCount)
	}
}

func TestRetry_ZeroAttempts(t *testing.T) {
	called := false
	fn := func() (string, failure.ClassifiedError) {
		called = true
		return "", nil
	}

	result := retry.Retry(context.Background(), retry.NewRetryParam(0, 0), &recordingSleeper{}, fn)

	if called {
		t.Fatal("task must not run with zero attempts")
	}
	var retryErr *retry.RetryError
	if !errors.As(result.Err(), &retryErr) {
		t.Fatalf("expected RetryError, got %T", result.Err())
	}
	if retryErr.Cause != retry.ErrZeroAttempt {
		t.Errorf("expected cause %q, got %q", retry.ErrZeroAttempt, retryErr.Cause)
	}
}

func TestRetry_SleepInterrupted(t *testing.T) {
	callCount := 0
	fn := func() (string, failure.ClassifiedError) {
		callCount++
		return "", transientErr()
	}
	sleeper := &recordingSleeper{err: context.Canceled}

	result := retry.Retry(context.Background(), retry.NewRetryParam(time.Second, 3), sleeper, fn)

	if callCount != 1 {
		t.Fatalf("expected 1 call, got %d", callCount)
	}
	var retryErr *retry.RetryError
	if !errors.As(result.Err(), &retryErr) {
		t.Fatalf("expected RetryError, got %T", result.Err())
	}
	if retryErr.Cause != retry.ErrCancelled {
		t.Errorf("expected cause %q, got %q", retry.ErrCancelled, retryErr.Cause)
	}
	if retryErr.IsRetryable() {
		t.Error("cancelled retry must not be retryable")
	}
}

func TestRetryError_Is(t *testing.T) {
	err := &retry.RetryError{Cause: retry.ErrExhaustedAttempts}
	if !errors.Is(err, &retry.RetryError{}) {
		t.Error("expected errors.Is to match any RetryError")
	}
}
