package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultTrackingViewTTL bounds how long a view can be served without a write.
const DefaultTrackingViewTTL = 5 * time.Minute

var errStaleView = errors.New("tracking view invalidated since read")

// TrackingViewCache stores serialized tracking views under
// parceltrack:tracking:<code> and their invalidation counter under
// parceltrack:tracking-version:<code>. Entries expire after the TTL even
// when an invalidation is lost.
type TrackingViewCache struct {
	c   *redis.Client
	ttl time.Duration
}

// NewTrackingViewCache returns a cache whose entries live for ttl. A
// non-positive ttl falls back to DefaultTrackingViewTTL.
func NewTrackingViewCache(c *redis.Client, ttl time.Duration) *TrackingViewCache {
	if ttl <= 0 {
		ttl = DefaultTrackingViewTTL
	}
	return &TrackingViewCache{c: c, ttl: ttl}
}

// Get reads the view and the current version in one round trip. A missing
// version counter reads as zero.
func (tc *TrackingViewCache) Get(ctx context.Context, trackingCode string) ([]byte, int64, bool, error) {
	pipe := tc.c.Pipeline()
	viewCmd := pipe.Get(ctx, trackingKey(trackingCode))
	versionCmd := pipe.Get(ctx, versionKey(trackingCode))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, errors.Wrap(err, "redis get tracking view")
	}

	version, err := versionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, errors.Wrap(err, "redis get tracking view version")
	}

	val, err := viewCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, errors.Wrap(err, "redis get tracking view")
	}
	return val, version, true, nil
}

// Set writes the view under WATCH on the version counter. The write is
// skipped when the counter moved away from version, either before the
// check or between the check and EXEC.
func (tc *TrackingViewCache) Set(ctx context.Context, trackingCode string, payload []byte, version int64) (bool, error) {
	vKey := versionKey(trackingCode)

	err := tc.c.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleView
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, trackingKey(trackingCode), payload, tc.ttl)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleView), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, errors.Wrap(err, "redis set tracking view")
	}
}

// Invalidate drops the views and advances their versions atomically. The
// version counters outlive the views so a slow reader still sees the move.
func (tc *TrackingViewCache) Invalidate(ctx context.Context, trackingCodes ...string) error {
	if len(trackingCodes) == 0 {
		return nil
	}

	_, err := tc.c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		keys := make([]string, 0, len(trackingCodes))
		for _, code := range trackingCodes {
			keys = append(keys, trackingKey(code))
			pipe.Incr(ctx, versionKey(code))
			pipe.Expire(ctx, versionKey(code), 2*tc.ttl)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis invalidate tracking views")
	}
	return nil
}

func trackingKey(code string) string {
	return keyPrefix + "tracking:" + code
}

func versionKey(code string) string {
	return keyPrefix + "tracking-version:" + code
}
