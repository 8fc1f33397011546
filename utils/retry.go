package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// permanentError marks an error that must not be retried.
type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent wraps err so the retry helpers stop immediately and return it
// unwrapped.
func Permanent(err error) error { return permanentError{err: err} }

func unwrapPermanent(err error) (error, bool) {
	var p permanentError
	if errors.As(err, &p) {
		return p.err, true
	}
	return err, false
}

// RetryFixed retries fn up to attempts times with a fixed delay between
// attempts. It is the per-hotel isolation wrapper: on exhaustion the last
// error is returned and the caller decides how to degrade.
func RetryFixed(attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			log.Warn().Int("attempt", attempt).Int("max", attempts).
				Dur("delay", delay).Msg("retrying")
			time.Sleep(delay)
		}
		err := fn()
		if err == nil {
			return nil
		}
		if inner, permanent := unwrapPermanent(err); permanent {
			return inner
		}
		lastErr = err
		log.Error().Err(err).Int("attempt", attempt).Msg("attempt failed")
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

// RetryBackoff retries fn with exponential backoff starting at base and
// capped at maxDelay (base, 2*base, 4*base, ...).
func RetryBackoff(attempts int, base, maxDelay time.Duration, fn func() error) error {
	var lastErr error
	backoff := base
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			log.Warn().Int("attempt", attempt).Int("max", attempts).
				Dur("backoff", backoff).Msg("retrying after backoff")
			time.Sleep(backoff)
			backoff *= 2
			if backoff > maxDelay {
				backoff = maxDelay
			}
		}
		err := fn()
		if err == nil {
			return nil
		}
		if inner, permanent := unwrapPermanent(err); permanent {
			return inner
		}
		lastErr = err
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
