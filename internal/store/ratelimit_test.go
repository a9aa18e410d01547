// internal/store/ratelimit_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatnil/internal/common/logger"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	_, redisClient := setupTestRedis(t)
	limiter := NewRateLimiter(redisClient, logger.NewTestLogger(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "fmv-recalc", "athlete-1", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed, "call %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "fmv-recalc", "athlete-1", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRateLimiter_WindowExpiryResetsCounter(t *testing.T) {
	mr, redisClient := setupTestRedis(t)
	limiter := NewRateLimiter(redisClient, logger.NewTestLogger(t))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "fmv-recalc", "athlete-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "fmv-recalc", "athlete-1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = limiter.Allow(ctx, "fmv-recalc", "athlete-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_SubjectsAreIndependent(t *testing.T) {
	_, redisClient := setupTestRedis(t)
	limiter := NewRateLimiter(redisClient, logger.NewTestLogger(t))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "fmv-recalc", "athlete-1", 1, time.Hour)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "fmv-recalc", "athlete-2", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, allowed)
}
