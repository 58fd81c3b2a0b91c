// Package redis holds the Redis backed adapters: the tracking view cache,
// the driver position geo index and the request rate limiter. All three
// share one client.
package redis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "parceltrack:"

// NewClient creates the shared client. Connections are opened lazily.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// Ping fails when the server cannot be reached.
func Ping(ctx context.Context, c *redis.Client) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}
