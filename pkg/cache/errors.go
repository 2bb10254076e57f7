package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a transient backend failure such as a refused or
// dropped connection. The Redis backend wraps it with [Retryable].
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks an error as worth retrying.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is the retry policy for cache operations: attempts calls in
// total, the pause doubling after each failure.
type backoff struct {
	attempts int
	delay    time.Duration
}

// defaultBackoff waits at most 100ms + 200ms in total.
var defaultBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], or the attempts run out. The last error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultBackoff.do(ctx, fn)
}

func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
