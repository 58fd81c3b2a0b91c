package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/services"
)

// AssignDriverCommandHandler opens a pickup or delivery job for a driver.
// A delivery assignment also closes any open pickup job of the parcel.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory, lifecycle)
//	cmd, _ := NewAssignDriverCommand(controller, parcelID, driverID, job.TypePickup)
//
//	j, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
// Requires a UoWFactory for transactional persistence operations.
func NewAssignDriverCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle opens a pickup or delivery job. The parcel row is locked before
// its open jobs so concurrent assignments of one parcel serialize.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.lifecycle.Policy().Authorize(cmd.Actor(), services.ActionAssignDriver, services.Target{}); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().GetForUpdate(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	profile, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	driverUser, err := uow.UserRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	openJobs, err := uow.JobRepository().GetOpenByParcelForUpdate(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	tr, err := h.lifecycle.AssignDriver(cmd.Actor(), p, profile, driverUser.Username(), cmd.JobType(), openJobs)
	if err != nil {
		return nil, err
	}

	if err = saveTransition(ctx, uow, tr, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.NewJob, nil
}
