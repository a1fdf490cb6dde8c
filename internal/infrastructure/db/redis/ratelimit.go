package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window request counter backed by Redis.
// Key format: ratelimit:<client>:<window_start_unix>
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a RateLimiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow reports whether the caller identified by key may proceed. The counter
// for the current window is incremented first, so rejected requests still
// count against the window. Errors fail open: an unreachable Redis must not
// take the public endpoint down with it.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(l.window).Unix()
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, windowStart)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit check: %w", err)
	}
	return count.Val() <= int64(l.limit), nil
}
