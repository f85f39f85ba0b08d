package shared

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Backoff is an explicit retry policy for transient API failures.
//
// Delays grow geometrically from Initial by Multiplier, capped at MaxDelay.
// Retrying stops once the total elapsed time would exceed MaxElapsed; the
// policy then reports [ErrBackoffExhausted] wrapping the last failure.
type Backoff struct {
	Initial    time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	MaxElapsed time.Duration
}

// DefaultBackoff returns the retry policy used for catalog API calls.
func DefaultBackoff() Backoff {
	return Backoff{
		Initial:    500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		MaxElapsed: 60 * time.Second,
	}
}

// Do invokes fn, retrying while it fails with an error wrapping [ErrTransient].
//
// Non-transient errors are returned immediately. Context cancellation aborts
// the wait between attempts.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	start := time.Now()
	delay := b.Initial

	for {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTransient) {
			return err
		}

		if time.Since(start)+delay > b.MaxElapsed {
			return fmt.Errorf("%w: %v", ErrBackoffExhausted, err)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * b.Multiplier)
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
}
