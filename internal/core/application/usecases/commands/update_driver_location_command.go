package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrUpdateDriverLocationCommandIsNotConstructed is returned when UpdateDriverLocationCommand is not created via constructor.
var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand represents a position report from a driver's device.
type UpdateDriverLocationCommand struct {
	actor    user.Actor
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a location update.
// Returns a ValueIsOutOfRange error for coordinates outside the valid range.
func NewUpdateDriverLocationCommand(actor user.Actor, latitude, longitude float64) (UpdateDriverLocationCommand, error) {
	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		actor:    actor,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDriverLocationCommandIsNotConstructed if validation fails.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// Actor returns the reporting driver.
func (c UpdateDriverLocationCommand) Actor() user.Actor {
	return c.actor
}

// Location returns the reported position.
func (c UpdateDriverLocationCommand) Location() kernel.Location {
	return c.location
}
