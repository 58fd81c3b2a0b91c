package driver

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

// ErrDriverIsNotConstructed is returned when a Driver is not created via constructor.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")

// Driver is the operational profile of a driver-role user. It shares the
// user's identifier and carries the last reported position.
//
// Business rules:
//   - a driver has at most one profile, keyed by the user id
//   - the position is unset until the first location update
//   - only the driver may overwrite their own position
type Driver struct {
	userID         kernel.UUID
	vehicleDetails string
	location       *kernel.Location
	available      bool
	guard          guard.ConstructorGuard
}

// NewDriver creates the profile for a freshly registered driver. New
// drivers are available and have no known position.
func NewDriver(userID kernel.UUID, vehicleDetails string) (*Driver, error) {
	return RestoreDriver(userID, vehicleDetails, nil, true)
}

// RestoreDriver rebuilds a driver profile from storage.
func RestoreDriver(userID kernel.UUID, vehicleDetails string, location *kernel.Location, available bool) (*Driver, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		location = &loc
	}

	return &Driver{
		userID:         userID,
		vehicleDetails: strings.TrimSpace(vehicleDetails),
		location:       location,
		available:      available,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the driver was created through a constructor.
// Returns ErrDriverIsNotConstructed if validation fails.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// UserID returns the identifier shared with the driver's user account.
func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

// VehicleDetails returns the free-text vehicle description.
func (d *Driver) VehicleDetails() string {
	return d.vehicleDetails
}

// Location returns the last reported position, or nil if none was reported.
func (d *Driver) Location() *kernel.Location {
	if d.location == nil {
		return nil
	}
	loc := *d.location
	return &loc
}

// IsAvailable reports whether the driver takes new assignments.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// UpdateLocation overwrites the position. Last write wins.
func (d *Driver) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = &location
	return nil
}

// SetAvailable toggles whether the driver takes new assignments.
func (d *Driver) SetAvailable(available bool) {
	d.available = available
}
