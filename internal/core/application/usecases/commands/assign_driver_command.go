package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when AssignDriverCommand is not created via constructor.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a controller handing a parcel to a driver
// for either the pickup or the delivery leg.
type AssignDriverCommand struct {
	actor    user.Actor
	parcelID kernel.UUID
	driverID kernel.UUID
	jobType  job.Type

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command for driver assignment.
// Parcel and driver IDs are both required and the job type must be known.
// All invalid arguments are reported together.
func NewAssignDriverCommand(
	actor user.Actor,
	parcelID, driverID kernel.UUID,
	jobType job.Type,
) (AssignDriverCommand, error) {
	var parcelErr, driverErr error
	if err := parcelID.Validate(); err != nil {
		parcelErr = errs.NewValueIsRequiredErrorWithCause("parcel_id", err)
	}
	if err := driverID.Validate(); err != nil {
		driverErr = errs.NewValueIsRequiredErrorWithCause("driver_id", err)
	}
	if err := errors.Join(parcelErr, driverErr, jobType.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		actor:    actor,
		parcelID: parcelID,
		driverID: driverID,
		jobType:  jobType,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDriverCommandIsNotConstructed if validation fails.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// Actor returns the controller issuing the assignment.
func (c AssignDriverCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the unique identifier for the parcel.
func (c AssignDriverCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// DriverID returns the unique identifier for the assigned driver.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// JobType returns the leg the driver is assigned to.
func (c AssignDriverCommand) JobType() job.Type {
	return c.jobType
}
