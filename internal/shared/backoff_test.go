package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastBackoff() Backoff {
	return Backoff{
		Initial:    time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		Multiplier: 2.0,
		MaxElapsed: 50 * time.Millisecond,
	}
}

func TestBackoff(t *testing.T) {
	t.Run("Succeeds First Attempt", func(t *testing.T) {
		calls := 0
		err := fastBackoff().Do(context.Background(), func() error {
			calls++
			return nil
		})

		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("Retries Transient Failures", func(t *testing.T) {
		calls := 0
		err := fastBackoff().Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("%w: rate limited", ErrTransient)
			}
			return nil
		})

		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("Stops On Non-Transient Error", func(t *testing.T) {
		calls := 0
		fatal := errors.New("invalid credentials")
		err := fastBackoff().Do(context.Background(), func() error {
			calls++
			return fatal
		})

		if !errors.Is(err, fatal) {
			t.Fatalf("expected fatal error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("Exhausts Retry Window", func(t *testing.T) {
		b := Backoff{
			Initial:    time.Millisecond,
			MaxDelay:   time.Millisecond,
			Multiplier: 1.0,
			MaxElapsed: 5 * time.Millisecond,
		}

		err := b.Do(context.Background(), func() error {
			return fmt.Errorf("%w: still down", ErrTransient)
		})

		if !errors.Is(err, ErrBackoffExhausted) {
			t.Fatalf("expected ErrBackoffExhausted, got %v", err)
		}
		if !errors.Is(err, ErrTransient) {
			t.Errorf("expected wrapped error to preserve the transient cause, got %v", err)
		}
	})

	t.Run("Context Cancellation Aborts Wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		b := Backoff{
			Initial:    time.Hour,
			Multiplier: 1.0,
			MaxElapsed: 24 * time.Hour,
		}

		done := make(chan error, 1)
		go func() {
			done <- b.Do(ctx, func() error {
				return fmt.Errorf("%w: unavailable", ErrTransient)
			})
		}()

		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("backoff did not abort after cancellation")
		}
	})
}
