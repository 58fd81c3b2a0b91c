package observers

import (
	"context"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/ports"

	"go.uber.org/zap"
)

// DriverPositionIndexer mirrors committed driver positions into the geo
// index used by FindNearbyDrivers.
type DriverPositionIndexer struct {
	index  ports.DriverGeoIndex
	logger *zap.Logger
}

// NewDriverPositionIndexer creates the observer.
func NewDriverPositionIndexer(index ports.DriverGeoIndex, logger *zap.Logger) *DriverPositionIndexer {
	return &DriverPositionIndexer{
		index:  index,
		logger: logger.With(zap.String("component", "driver_position_indexer")),
	}
}

// AfterCommit indexes every located driver among the aggregates.
// Index failures are logged; the next location update repairs the entry.
func (o *DriverPositionIndexer) AfterCommit(ctx context.Context, aggregates []any) {
	for _, a := range aggregates {
		d, ok := a.(*driver.Driver)
		if !ok {
			continue
		}
		loc := d.Location()
		if loc == nil {
			continue
		}
		if err := o.index.Upsert(ctx, d.UserID(), *loc); err != nil {
			o.logger.Warn("index driver position", zap.String("driver_id", d.UserID().String()), zap.Error(err))
		}
	}
}
