//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/pkg/testutil"
)

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	container := testutil.NewRedisContainer(ctx, t)

	client, err := NewRedisClient(ctx, container.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 3, 2*time.Second)
	for i, want := range []bool{true, true, true, false} {
		got, err := l.Allow(ctx, "search:broker")
		require.NoError(t, err)
		assert.Equal(t, want, got, "attempt %d", i+1)
	}

	ttl, err := client.TTL(ctx, keyPrefix+"search:broker").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.Eventually(t, func() bool {
		ok, err := l.Allow(ctx, "search:broker")
		return err == nil && ok
	}, 5*time.Second, 250*time.Millisecond)
}
