package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed rate_limit.lua
var rateLimitScript string

// RedisLimiter enforces the fixed window atomically in Redis via a Lua
// script, so multiple registry instances share one quota per creator.
type RedisLimiter struct {
	redis  *redis.Client
	script *redis.Script
	limit  int64
	window time.Duration
	logger Logger
}

// NewRedisLimiter creates a Redis-backed limiter with the embedded Lua script
func NewRedisLimiter(redisClient *redis.Client, limit int64, window time.Duration, logger Logger) *RedisLimiter {
	return &RedisLimiter{
		redis:  redisClient,
		script: redis.NewScript(rateLimitScript),
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow records one request for creatorID within the current window
func (r *RedisLimiter) Allow(ctx context.Context, creatorID string) (*Result, error) {
	key := fmt.Sprintf("rate_limit:creator:%s", creatorID)
	windowSec := int(r.window.Seconds())

	result, err := r.script.Run(ctx, r.redis, []string{key}, r.limit, windowSec).Result()
	if err != nil {
		r.logger.Error("rate limit check failed", "key", key, "error", err)
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	// Parse result array: {allowed, current_count, limit, retry_after}
	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 4 {
		return nil, fmt.Errorf("unexpected script result format")
	}

	limitResult := &Result{
		Allowed:           resultArray[0].(int64) == 1,
		CurrentCount:      resultArray[1].(int64),
		Limit:             resultArray[2].(int64),
		RetryAfterSeconds: resultArray[3].(int64),
	}

	if !limitResult.Allowed {
		r.logger.Warn("rate limit exceeded",
			"key", key,
			"current", limitResult.CurrentCount,
			"limit", limitResult.Limit,
			"retry_after", limitResult.RetryAfterSeconds)
	} else {
		r.logger.Debug("rate limit check passed",
			"key", key,
			"current", limitResult.CurrentCount,
			"limit", limitResult.Limit)
	}

	return limitResult, nil
}
