package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.Empty(t, cfg.RetryableErrors)
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("first attempt succeeds", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, DefaultConfig(), func() error {
			attempts++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 3
		cfg.InitialDelay = 5 * time.Millisecond

		attempts := 0
		err := Do(ctx, cfg, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("temporary error")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 3
		cfg.InitialDelay = 5 * time.Millisecond

		attempts := 0
		err := Do(ctx, cfg, func() error {
			attempts++
			return errors.New("persistent error")
		})

		assert.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Contains(t, err.Error(), "persistent error")
	})

	t.Run("non-retryable error fails fast", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 5
		cfg.InitialDelay = 5 * time.Millisecond
		cfg.RetryableErrors = []string{"connection refused"}

		attempts := 0
		err := Do(ctx, cfg, func() error {
			attempts++
			return errors.New("syntax error")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cfg := DefaultConfig()
		cfg.MaxAttempts = 10
		cfg.InitialDelay = 50 * time.Millisecond

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		err := Do(cancelCtx, cfg, func() error {
			return errors.New("still failing")
		})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects non-positive max attempts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 0

		err := Do(ctx, cfg, func() error { return nil })
		assert.Error(t, err)
	})
}

func TestDoWithResult(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.MaxAttempts = 3
	cfg.InitialDelay = 5 * time.Millisecond

	attempts := 0
	got, err := DoWithResult(ctx, cfg, func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("not yet")
		}
		return "ready", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ready", got)
	assert.Equal(t, 2, attempts)
}

func TestIsRetryableError(t *testing.T) {
	cfg := Config{RetryableErrors: []string{"connection refused", "i/o timeout"}}

	assert.True(t, IsRetryableError(errors.New("dial tcp: Connection Refused"), cfg))
	assert.True(t, IsRetryableError(errors.New("read: i/o timeout"), cfg))
	assert.False(t, IsRetryableError(errors.New("permission denied"), cfg))
	assert.False(t, IsRetryableError(nil, cfg))

	assert.True(t, IsRetryableError(errors.New("anything"), Config{}))
}

func TestCalculateDelay(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 10 * time.Second, Multiplier: 2.0}

	assert.Equal(t, time.Second, calculateDelay(0, cfg))
	assert.Equal(t, 2*time.Second, calculateDelay(1, cfg))
	assert.Equal(t, 4*time.Second, calculateDelay(2, cfg))
	assert.Equal(t, 10*time.Second, calculateDelay(10, cfg))
	assert.Equal(t, time.Second, calculateDelay(-1, cfg))
}

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig()

	assert.NotEmpty(t, cfg.RetryableErrors)
	assert.True(t, IsRetryableError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), cfg))
	assert.False(t, IsRetryableError(errors.New("syntax error at or near"), cfg))
}
