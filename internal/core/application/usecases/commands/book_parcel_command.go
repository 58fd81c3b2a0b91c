package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrBookParcelCommandIsNotConstructed is returned when BookParcelCommand is not created via constructor.
var ErrBookParcelCommandIsNotConstructed = errors.New(
	"BookParcelCommand must be created via NewBookParcelCommand constructor",
)

// BookParcelCommand books a parcel for the calling customer.
type BookParcelCommand struct {
	actor   user.Actor
	details parcel.Details

	guard guard.ConstructorGuard
}

// NewBookParcelCommand creates a booking command. Details are validated by
// the Parcel aggregate when the command is handled.
func NewBookParcelCommand(actor user.Actor, details parcel.Details) BookParcelCommand {
	return BookParcelCommand{
		actor:   actor,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrBookParcelCommandIsNotConstructed if validation fails.
func (c BookParcelCommand) Validate() error {
	return c.guard.Validate(ErrBookParcelCommandIsNotConstructed)
}

// Actor returns the customer booking the parcel.
func (c BookParcelCommand) Actor() user.Actor {
	return c.actor
}

// Details returns the addresses and package description.
func (c BookParcelCommand) Details() parcel.Details {
	return c.details
}
