// Package retry paces repeat attempts for the HTTP transport. Retries are
// restricted to transient conditions (network errors and the 429/5xx status
// family); every other status is a definitive answer for a probe and is
// never retried.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Policy bounds how often and how fast an operation is retried. Delays
// double from Base up to Cap. The zero value never retries.
type Policy struct {
	Attempts int           // total tries including the first
	Base     time.Duration // delay before the second try
	Cap      time.Duration // ceiling on any single delay
	Jitter   bool          // spread delays by ±25%

	sleep func(ctx context.Context, d time.Duration) error // test hook
}

// HTTPPolicy builds the transport policy: maxRetries extra tries with
// exponential backoff from backoffSeconds, capped at 5 s. Probing thousands
// of candidates per target leaves no room for long retry loops.
func HTTPPolicy(maxRetries int, backoffSeconds float64) Policy {
	return Policy{
		Attempts: maxRetries + 1,
		Base:     time.Duration(backoffSeconds * float64(time.Second)),
		Cap:      5 * time.Second,
		Jitter:   true,
	}
}

// TransientStatus reports whether an HTTP status code is worth retrying.
func TransientStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// StopError wraps an error to signal that retrying should stop immediately.
type StopError struct {
	Err error
}

func (e *StopError) Error() string {
	if e.Err == nil {
		return "retry stopped"
	}
	return e.Err.Error()
}

func (e *StopError) Unwrap() error { return e.Err }

// Stop wraps err so that Do returns it without further retries. Stop(nil)
// makes Do return nil, letting callers accept a response mid-loop.
func Stop(err error) error {
	return &StopError{Err: err}
}

// Do runs fn until it succeeds, permanently fails, or the policy is
// exhausted, sleeping between failures. It returns nil on the first
// successful call, the wrapped error if fn returns a StopError, ctx.Err()
// on cancellation, and otherwise the last error.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	if p.Attempts <= 0 {
		return nil
	}
	wait := p.sleep
	if wait == nil {
		wait = sleepUntil
	}

	var lastErr error
	for left := p.Attempts; left > 0; left-- {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var stop *StopError
		if errors.As(lastErr, &stop) {
			return stop.Err
		}

		if left > 1 {
			if err := wait(ctx, p.delay(p.Attempts-left)); err != nil {
				return err
			}
		}
	}
	return lastErr
}

// delay returns the pause after the given 0-indexed failed attempt.
func (p Policy) delay(attempt int) time.Duration {
	d := p.Base
	for ; attempt > 0 && d < p.Cap; attempt-- {
		d *= 2
	}
	if d > p.Cap {
		d = p.Cap
	}
	if p.Jitter && d > 0 {
		if quarter := int64(d) / 4; quarter > 0 {
			d += time.Duration(rand.Int64N(2*quarter) - quarter)
		}
	}
	return d
}

func sleepUntil(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
