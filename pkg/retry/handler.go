package retry

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/timeutil"
)

// Retry executes fn up to MaxAttempts times, sleeping a fixed Delay between
// attempts. Only retryable errors trigger another attempt; any other error is
// returned as-is right away.
//
// The loop never sleeps after the final attempt, so a task that always fails
// runs MaxAttempts times and sleeps MaxAttempts-1 times.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	sleeper timeutil.Sleeper,
	fn func() (T, failure.ClassifiedError),
) Result[T] {
	var lastErr failure.ClassifiedError

	if retryParam.MaxAttempts < 1 {
		return Result[T]{
			err: &RetryError{
				Message:   "max attempt cannot be 0",
				Cause:     ErrZeroAttempt,
				Retryable: false,
			},
		}
	}

	attempts := 0
	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		attempts = attempt
		value, err := fn()
		if err == nil {
			return Result[T]{value: value, attempts: attempts}
		}

		lastErr = err

		if !isErrorRetryable(err) {
			return Result[T]{err: err, attempts: attempts}
		}

		if attempt == retryParam.MaxAttempts {
			break
		}

		if sleepErr := sleeper.Sleep(ctx, retryParam.Delay); sleepErr != nil {
			return Result[T]{
				err: &RetryError{
					Message:   fmt.Sprintf("stopped after %d attempts: %v. Last error: %v", attempts, sleepErr, lastErr),
					Cause:     ErrCancelled,
					Retryable: false,
					Last:      lastErr,
				},
				attempts: attempts,
			}
		}
	}

	return Result[T]{
		err: &RetryError{
			Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
			Cause:     ErrExhaustedAttempts,
			Retryable: true,
			Last:      lastErr,
		},
		attempts: attempts,
	}
}

// isErrorRetryable reports whether err asks for another attempt.
// Errors that do not say so are treated as retryable.
func isErrorRetryable(err failure.ClassifiedError) bool {
	if r, ok := err.(failure.Retryable); ok {
		return r.IsRetryable()
	}
	return true
}
