// Package retry provides a small retry-with-backoff helper shared by the
// use cases that tolerate transient connection failures.
package retry

import (
	"context"
	"time"
)

// Do runs fn up to attempts times. Between attempts it sleeps delay times the
// attempt number (linear backoff). A failure is only retried when retryable
// returns true for it; any other error aborts immediately. The error of the
// final attempt is returned.
func Do(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(delay * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
