package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "creator-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, int64(i+1), result.CurrentCount)
	}

	result, err := limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(3), result.Limit)
	assert.Greater(t, result.RetryAfterSeconds, int64(0))
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })

	result, err := limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// Advance past the window; the counter resets lazily on the next check
	now = now.Add(61 * time.Second)
	result, err = limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(1), result.CurrentCount)
}

func TestMemoryLimiterIsolatesCreators(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	result, err := limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "creator-2")
	require.NoError(t, err)
	assert.True(t, result.Allowed, "creator-2 has its own window")

	result, err = limiter.Allow(ctx, "creator-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestMemoryLimiterPrunesExpiredWindows(t *testing.T) {
	limiter := NewMemoryLimiter(10, time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })

	for i := 0; i < 50; i++ {
		_, err := limiter.Allow(ctx, fmt.Sprintf("creator-%d", i))
		require.NoError(t, err)
	}

	limiter.mu.Lock()
	assert.Len(t, limiter.windows, 50)
	limiter.mu.Unlock()

	// Once the window elapses, the next check drops every stale entry
	now = now.Add(61 * time.Second)
	_, err := limiter.Allow(ctx, "creator-fresh")
	require.NoError(t, err)

	limiter.mu.Lock()
	assert.Len(t, limiter.windows, 1, "only the active creator remains")
	_, ok := limiter.windows["creator-fresh"]
	assert.True(t, ok)
	limiter.mu.Unlock()
}
