package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msyaifulbhr/hscode/internal/service"
)

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	fastOpts := service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return nil
		}, fastOpts)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries retryable errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: errors.New("transient"), Retryable: true}
			}
			return nil
		}, fastOpts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: errors.New("transient"), Retryable: true}
		}, fastOpts)
		require.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable errors abort immediately", func(t *testing.T) {
		sentinel := errors.New("bad request")
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: sentinel, Retryable: false}
		}, fastOpts)
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	})

	t.Run("quota exhaustion aborts even when marked retryable", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{
				Err:       fmt.Errorf("provider said no: %w", ErrQuotaExhausted),
				Retryable: true,
			}
		}, fastOpts)
		require.ErrorIs(t, err, ErrQuotaExhausted)
		assert.Equal(t, 1, calls)
	})

	t.Run("single attempt returns the bare error", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := WithRetry(ctx, func() error {
			return &RetryableError{Err: sentinel, Retryable: true}
		}, service.RetryOptions{MaxAttempts: 1})
		require.ErrorIs(t, err, sentinel)
		assert.NotErrorIs(t, err, ErrMaxRetries)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrInferenceUnavailable))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", ErrInferenceUnavailable)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(ErrQuotaExhausted))
	assert.False(t, IsRetryable(ErrInvalidInferenceOutput))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
}
