package observers

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"

	"go.uber.org/zap"
)

// TrackingViewInvalidator drops the cached tracking view of every parcel
// written by a committed unit of work.
type TrackingViewInvalidator struct {
	cache  ports.TrackingViewCache
	logger *zap.Logger
}

// NewTrackingViewInvalidator creates the observer.
func NewTrackingViewInvalidator(cache ports.TrackingViewCache, logger *zap.Logger) *TrackingViewInvalidator {
	return &TrackingViewInvalidator{
		cache:  cache,
		logger: logger.With(zap.String("component", "tracking_view_invalidator")),
	}
}

// AfterCommit invalidates the tracking codes of the written parcels in one call.
// A failed invalidation is logged and left to the cache TTL.
func (o *TrackingViewInvalidator) AfterCommit(ctx context.Context, aggregates []any) {
	seen := make(map[string]struct{})
	codes := make([]string, 0, 1)
	for _, a := range aggregates {
		p, ok := a.(*parcel.Parcel)
		if !ok {
			continue
		}
		code := p.TrackingCode().String()
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return
	}

	if err := o.cache.Invalidate(ctx, codes...); err != nil {
		o.logger.Warn("invalidate tracking views", zap.Strings("tracking_codes", codes), zap.Error(err))
	}
}
