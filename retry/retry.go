// Package retry provides retry logic with exponential backoff and jitter.
// Only errors marked recoverable via NewRecoverableError are retried;
// everything else fails fast.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseWait   = 1 * time.Second
)

// Option configures a call to Do.
type Option func(*config)

type config struct {
	maxRetries int
	baseWait   time.Duration
}

// WithMaxRetries sets the maximum number of attempts.
func WithMaxRetries(maxRetries int) Option {
	return func(c *config) {
		c.maxRetries = maxRetries
	}
}

// WithBaseWait sets the base wait duration used for exponential backoff.
func WithBaseWait(baseWait time.Duration) Option {
	return func(c *config) {
		c.baseWait = baseWait
	}
}

// Do executes the given function, retrying recoverable errors with
// exponential backoff and jitter. Non-recoverable errors are returned
// immediately. Once attempts are exhausted the underlying error of the last
// recoverable failure is returned.
func Do(ctx context.Context, f func() error, opts ...Option) error {
	c := &config{
		maxRetries: DefaultMaxRetries,
		baseWait:   DefaultBaseWait,
	}
	for _, opt := range opts {
		opt(c)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(float64(c.baseWait) * math.Pow(2, float64(attempt-1)))
			jitter := time.Duration(rand.Float64() * float64(backoff) * 0.1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}
		err := f()
		if err == nil {
			return nil
		}
		var recoverable *RecoverableError
		if !errors.As(err, &recoverable) {
			return err
		}
		lastErr = recoverable.Unwrap()
	}
	return lastErr
}

// RecoverableError marks an error as safe to retry.
type RecoverableError struct {
	err error
}

// NewRecoverableError wraps an error to mark it as recoverable.
func NewRecoverableError(err error) *RecoverableError {
	return &RecoverableError{err: err}
}

func (e *RecoverableError) Error() string {
	return e.err.Error()
}

func (e *RecoverableError) Unwrap() error {
	return e.err
}

// IsRecoverable returns true if the given error is marked recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	var recoverable *RecoverableError
	return errors.As(err, &recoverable)
}
