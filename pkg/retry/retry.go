package retry

import (
	"context"
	"time"
)

// BackoffFunc returns the delay to wait after a failed attempt.
// The attempt number is 1-based.
type BackoffFunc func(attempt int) time.Duration

// Policy is a bounded-retry policy independent of any particular call site
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

// LinearBackoff returns a backoff function growing by a fixed unit per attempt
// (unit, 2*unit, 3*unit, ...)
func LinearBackoff(unit time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return unit * time.Duration(attempt)
	}
}

// Do runs fn up to MaxAttempts times, sleeping Backoff(attempt) between
// failures. No backoff follows the final failed attempt; the last error is
// returned immediately. Returns nil on the first success, or the context
// error if ctx is cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
