package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// UpdateDriverLocationCommandHandler stores the latest position of a driver.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewUpdateDriverLocationCommandHandler creates a handler for location updates.
func NewUpdateDriverLocationCommandHandler(
	uowFactory UoWFactory,
	lifecycle *services.Lifecycle,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle locks only the driver row. No tracking event is written.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := h.lifecycle.Policy().Authorize(actor, services.ActionUpdateLocation, services.BoundTo(actor.ID())); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	d, err := driverRepo.GetForUpdate(ctx, actor.ID())
	if err != nil {
		return err
	}

	if err = h.lifecycle.UpdateDriverLocation(actor, d, cmd.Location()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
