package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries int) *Config {
	return &Config{
		MaxRetries:    retries,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	calls := 0
	err := NewDefaultRetrier().Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	calls := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	want := errors.New("still failing")
	calls := 0
	err := NewRetrier(fastConfig(2)).Do(context.Background(), func() error {
		calls++
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 3, calls)
}

func TestRetry_Permanent(t *testing.T) {
	want := errors.New("bad request")
	calls := 0
	err := NewRetrier(fastConfig(5)).Do(context.Background(), func() error {
		calls++
		return fmt.Errorf("call: %w", Permanent(want))
	})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, calls)
	assert.NoError(t, Permanent(nil))
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := NewDefaultRetrier().Do(ctx, func() error {
		cancel()
		return errors.New("failed after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_BackoffIsBounded(t *testing.T) {
	cfg := &Config{
		MaxRetries:    2,
		BackoffFactor: 2.0,
		InitialDelay:  20 * time.Millisecond,
		MaxDelay:      30 * time.Millisecond,
		Jitter:        5 * time.Millisecond,
	}

	start := time.Now()
	_ = NewRetrier(cfg).Do(context.Background(), func() error { return errors.New("x") })
	elapsed := time.Since(start)

	// 20ms, then min(40ms, 30ms), each plus up to 5ms jitter
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}
