package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter. Each window gets its own key,
// incremented and given a TTL in one transaction.
type RateLimiter struct {
	c   *redis.Client
	now func() time.Time
}

// NewRateLimiter creates a limiter whose windows follow the wall clock.
func NewRateLimiter(c *redis.Client) *RateLimiter {
	return &RateLimiter{c: c, now: time.Now}
}

// Allow reports whether the call is within limit and the count so far in
// the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	bucket := rl.now().UnixNano() / int64(window)
	k := keyPrefix + "ratelimit:" + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, errors.Wrap(err, "redis ratelimit")
	}

	n := incr.Val()
	return n <= limit, n, nil
}
