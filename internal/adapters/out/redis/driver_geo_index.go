package redis

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const driverGeoKey = keyPrefix + "drivers:geo"

// DriverGeoIndex keeps the last reported position of every driver in one
// GEO sorted set keyed by driver id.
type DriverGeoIndex struct {
	c *redis.Client
}

// NewDriverGeoIndex creates a geo index on the shared client.
func NewDriverGeoIndex(c *redis.Client) *DriverGeoIndex {
	return &DriverGeoIndex{c: c}
}

// Upsert records the driver's position, replacing the previous one.
func (g *DriverGeoIndex) Upsert(ctx context.Context, driverID kernel.UUID, location kernel.Location) error {
	err := g.c.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      driverID.String(),
		Longitude: location.Longitude(),
		Latitude:  location.Latitude(),
	}).Err()
	if err != nil {
		return errors.Wrap(err, "redis geoadd driver")
	}
	return nil
}

// Nearby returns up to limit drivers within radiusKm of center, nearest
// first. Members that no longer parse as ids are skipped.
func (g *DriverGeoIndex) Nearby(
	ctx context.Context,
	center kernel.Location,
	radiusKm float64,
	limit int,
) ([]ports.NearbyDriver, error) {
	hits, err := g.c.GeoRadius(ctx, driverGeoKey, center.Longitude(), center.Latitude(), &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Count:     limit,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis georadius drivers")
	}

	drivers := make([]ports.NearbyDriver, 0, len(hits))
	for _, hit := range hits {
		id, idErr := kernel.UUIDFromString(hit.Name)
		if idErr != nil {
			continue
		}
		location, locErr := kernel.NewLocation(hit.Latitude, hit.Longitude)
		if locErr != nil {
			continue
		}
		drivers = append(drivers, ports.NearbyDriver{
			DriverID:   id,
			DistanceKm: hit.Dist,
			Location:   location,
		})
	}

	return drivers, nil
}
