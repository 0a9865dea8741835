package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts events in Redis with a fixed window per key. INCR is
// atomic, so the contract holds across instances sharing the same Redis.
type RedisLimiter struct {
	client *redis.Client
}

// NewRedisLimiter builds a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

// Allow increments the key's counter and checks it against max. The first
// event in a window sets the key's expiry to the window length.
func (l *RedisLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, error) {
	cnt, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		l.client.Expire(ctx, key, window)
	}
	return cnt <= int64(max), nil
}
