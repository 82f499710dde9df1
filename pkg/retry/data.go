package retry

import (
	"time"

	"github.com/rohmanhakim/digester/pkg/failure"
)

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	// Fixed wait between two consecutive attempts.
	Delay time.Duration
	// Total number of attempts, including the first one.
	MaxAttempts int
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(delay time.Duration, maxAttempts int) RetryParam {
	return RetryParam{
		Delay:       delay,
		MaxAttempts: maxAttempts,
	}
}

// Result is the outcome of a retried task: either a value or the error that
// ended the loop, plus how many times the task actually ran.
type Result[T any] struct {
	value    T
	err      failure.ClassifiedError
	attempts int
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() failure.ClassifiedError {
	return r.err
}

func (r Result[T]) Attempts() int {
	return r.attempts
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}
