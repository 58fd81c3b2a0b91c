package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrCancelParcelCommandIsNotConstructed is returned when CancelParcelCommand is not created via constructor.
var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand represents a controller cancelling a parcel.
type CancelParcelCommand struct {
	actor    user.Actor
	parcelID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a cancellation command. The reason is optional.
// Returns a ValueIsRequired error if parcelID is empty.
func NewCancelParcelCommand(actor user.Actor, parcelID kernel.UUID, reason string) (CancelParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CancelParcelCommand{}, errs.NewValueIsRequiredErrorWithCause("parcel_id", err)
	}

	return CancelParcelCommand{
		actor:    actor,
		parcelID: parcelID,
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelParcelCommandIsNotConstructed if validation fails.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// Actor returns the controller requesting the cancellation.
func (c CancelParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the unique identifier for the parcel.
func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Reason returns the trimmed cancellation reason.
func (c CancelParcelCommand) Reason() string {
	return c.reason
}
