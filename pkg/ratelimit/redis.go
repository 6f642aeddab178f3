package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// Redis counts windows in a shared Redis instance so horizontally scaled
// replicas enforce one combined budget. On any Redis error it falls back to
// an in-process Memory limiter rather than admitting unconditionally.
type Redis struct {
	client   *goredis.Client
	limit    int
	window   time.Duration
	prefix   string
	fallback *Memory
}

// NewRedis creates a Redis-backed fixed-window limiter. prefix namespaces the
// counter keys (e.g. "rl:contact:").
func NewRedis(client *goredis.Client, limit int, window time.Duration, prefix string) *Redis {
	return &Redis{
		client:   client,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		fallback: NewMemory(limit, window),
	}
}

func (r *Redis) Check(ctx context.Context, identifier string) (Result, error) {
	res, err := r.checkRedis(ctx, r.prefix+identifier)
	if err != nil {
		return r.fallback.Check(ctx, identifier)
	}
	return res, nil
}

func (r *Redis) checkRedis(ctx context.Context, key string) (Result, error) {
	ttlSeconds := int(r.window.Seconds())

	raw, err := r.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return Result{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := raw.([]interface{})
	if !ok || len(arr) < 2 {
		return Result{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	if int(count) > r.limit {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfterSeconds(time.Until(resetAt)),
			ResetAt:    resetAt,
		}, nil
	}

	remaining := r.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Remaining: remaining, ResetAt: resetAt}, nil
}
