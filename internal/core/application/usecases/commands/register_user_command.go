package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrRegisterUserCommandIsNotConstructed is returned when RegisterUserCommand is not created via constructor.
var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents a new customer, driver or controller account.
type RegisterUserCommand struct {
	username       string
	email          string
	role           user.Role
	profile        user.Profile
	vehicleDetails string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand validates the role; username and email are
// validated by the User aggregate. vehicleDetails is used for drivers only.
func NewRegisterUserCommand(
	username, email string,
	role user.Role,
	profile user.Profile,
	vehicleDetails string,
) (RegisterUserCommand, error) {
	if err := role.Validate(); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		username:       username,
		email:          email,
		role:           role,
		profile:        profile,
		vehicleDetails: strings.TrimSpace(vehicleDetails),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterUserCommandIsNotConstructed if validation fails.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Username returns the requested login name.
func (c RegisterUserCommand) Username() string {
	return c.username
}

// Email returns the contact address.
func (c RegisterUserCommand) Email() string {
	return c.email
}

// Role returns the account role.
func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

// Profile returns the optional personal details.
func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

// VehicleDetails returns the driver's vehicle description.
func (c RegisterUserCommand) VehicleDetails() string {
	return c.vehicleDetails
}
