package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// RegisterUserCommandHandler creates user accounts.
//
// Example:
//
//	handler := NewRegisterUserCommandHandler(uowFactory, kernel.SystemClock{})
//	cmd, _ := NewRegisterUserCommand("dana", "dana@example.com", user.RoleDriver, user.Profile{}, "white van")
//
//	u, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // username or email already taken
//	}
type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewRegisterUserCommandHandler creates a handler for user registration.
// Requires a UoWFactory and the clock that stamps creation time.
func NewRegisterUserCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the user and, for drivers, the driver profile in the same
// transaction.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.Username(), cmd.Email(), cmd.Role(), cmd.Profile(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	var profile *driver.Driver
	if u.Role() == user.RoleDriver {
		if profile, err = driver.NewDriver(u.ID(), cmd.VehicleDetails()); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}

	if profile != nil {
		if err = uow.DriverRepository().Add(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
