package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryFixedSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryFixed(3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryFixedExhaustion(t *testing.T) {
	sentinel := errors.New("still broken")
	calls := 0
	err := RetryFixed(3, time.Millisecond, func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 3, calls)
}

func TestRetryFixedStopsOnPermanent(t *testing.T) {
	sentinel := errors.New("unrecoverable")
	calls := 0
	err := RetryFixed(5, time.Millisecond, func() error {
		calls++
		return Permanent(sentinel)
	})

	// The permanent error comes back unwrapped, after a single attempt.
	require.Equal(t, sentinel, err)
	require.Equal(t, 1, calls)
}

func TestRetryBackoffSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryBackoff(3, time.Millisecond, 4*time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestRetryBackoffStopsOnPermanent(t *testing.T) {
	sentinel := errors.New("blocked")
	calls := 0
	err := RetryBackoff(5, time.Millisecond, 4*time.Millisecond, func() error {
		calls++
		return Permanent(sentinel)
	})

	require.Equal(t, sentinel, err)
	require.Equal(t, 1, calls)
}

func TestPermanentPreservesErrorsIs(t *testing.T) {
	sentinel := errors.New("root cause")
	wrapped := Permanent(sentinel)

	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, sentinel.Error(), wrapped.Error())
}
