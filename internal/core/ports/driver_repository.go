package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
)

// DriverRepository persists driver profiles.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get returns the profile of the driver-role user with the given id.
	Get(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)
}
