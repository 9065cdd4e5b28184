package apierr

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig holds retry parameters for exponential backoff.
//
// Invalid values are normalized:
//   - MaxRetries < 0 becomes 0 (single attempt)
//   - BaseDelay <= 0 becomes 1ms
//   - MaxDelay <= 0 becomes BaseDelay
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// OnRetry, if set, is called before each wait with the failed
	// attempt number (1-based), its error and the wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultRetryConfig suits interactive Graph reads.
var DefaultRetryConfig = RetryConfig{
	MaxRetries: 3,
	BaseDelay:  500 * time.Millisecond,
	MaxDelay:   4 * time.Second,
}

func (c RetryConfig) normalized() RetryConfig {
	c.MaxRetries = max(c.MaxRetries, 0)
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = c.BaseDelay
	}
	return c
}

// backoff returns the wait before retry n (1-based), doubling from
// BaseDelay up to MaxDelay.
func (c RetryConfig) backoff(n int) time.Duration {
	d := c.BaseDelay
	for i := 1; i < n && d < c.MaxDelay; i++ {
		d *= 2
	}
	return min(d, c.MaxDelay)
}

// RetryAfterError carries the wait a throttled service asked for.
type RetryAfterError struct {
	Err   error
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return e.Err.Error()
}

func (e *RetryAfterError) Unwrap() error {
	return e.Err
}

// WithRetryAfter attaches a server-requested wait to err.
func WithRetryAfter(err error, after time.Duration) error {
	if err == nil || after <= 0 {
		return err
	}
	return &RetryAfterError{Err: err, After: after}
}

// RetryWithBackoff runs fn until it succeeds, shouldRetry rejects its
// error, the retries are spent, or ctx is done. A RetryAfterError in the
// chain overrides the computed backoff when it asks for longer.
func RetryWithBackoff[T any](
	ctx context.Context,
	cfg RetryConfig,
	fn func() (T, error),
	shouldRetry func(error) bool,
) (T, error) {
	cfg = cfg.normalized()

	var zero T
	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !shouldRetry(err) {
			return zero, err
		}
		if attempt > cfg.MaxRetries {
			return zero, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
		}

		wait := cfg.backoff(attempt)
		var ra *RetryAfterError
		if errors.As(err, &ra) && ra.After > wait {
			wait = ra.After
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
