package booking

import (
	"context"
	"log"
	"time"
)

// linearBackoff returns the delay before retrying after the given 1-based
// attempt: 1.5s per attempt, capped at 5s.
func linearBackoff(attempt int) time.Duration {
	d := time.Duration(float64(attempt) * 1.5 * float64(time.Second))
	if d > 5*time.Second {
		return 5 * time.Second
	}
	return d
}

// withRetries runs op up to attempts times, sleeping delay(attempt) between
// failures. It is state-free: all policy lives in the arguments. Returns nil
// on the first success, the last error once attempts are exhausted, or the
// context error if cancelled while waiting.
func withRetries(ctx context.Context, attempts int, delay func(attempt int) time.Duration, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := op(); err != nil {
			lastErr = err
			if attempt == attempts {
				break
			}
			wait := delay(attempt)
			log.Printf("[WARN] attempt %d/%d failed: %v, retrying in %v", attempt, attempts, err, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		return nil
	}
	return lastErr
}
