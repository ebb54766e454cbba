package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false, false} {
		got, err := l.Allow(ctx, "broker-a")
		require.NoError(t, err)
		assert.Equal(t, want, got, "attempt %d", i+1)
	}

	ok, err := l.Allow(ctx, "broker-b")
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, err = l.Allow(ctx, "broker-a")
	require.NoError(t, err)
	assert.True(t, ok, "a new window starts after the period")
}

func TestMemoryLimiter_SweepsExpiredWindows(t *testing.T) {
	now := time.Now()
	l := NewMemoryLimiter(1, time.Second)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	_, _ = l.Allow(context.Background(), "b")
	now = now.Add(2 * time.Second)
	_, _ = l.Allow(context.Background(), "c")

	assert.Len(t, l.windows, 1)
}

func TestMemoryLimiter_Disabled(t *testing.T) {
	l := NewMemoryLimiter(0, time.Minute)
	for range 100 {
		ok, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
}
