package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// TrackingViewCache stores serialized tracking views by tracking code.
//
// Every invalidation advances the code's version. A reader repopulating a
// miss passes the version it observed in Get to Set, so a view loaded
// before a concurrent commit is never written back after that commit's
// invalidation.
type TrackingViewCache interface {
	// Get returns ok=false on a miss. version is reported on hits and misses.
	Get(ctx context.Context, trackingCode string) (payload []byte, version int64, ok bool, err error)
	// Set stores payload unless the code was invalidated after the Get that
	// returned version. stored=false reports a skipped write.
	Set(ctx context.Context, trackingCode string, payload []byte, version int64) (stored bool, err error)
	Invalidate(ctx context.Context, trackingCodes ...string) error
}

// NearbyDriver is a hit of a radius search, nearest first.
type NearbyDriver struct {
	DriverID   kernel.UUID
	DistanceKm float64
	Location   kernel.Location
}

// DriverGeoIndex mirrors driver positions for radius searches.
type DriverGeoIndex interface {
	Upsert(ctx context.Context, driverID kernel.UUID, location kernel.Location) error
	Nearby(ctx context.Context, center kernel.Location, radiusKm float64, limit int) ([]NearbyDriver, error)
}
