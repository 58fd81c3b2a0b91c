package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler cancels parcels and fails their open jobs.
type CancelParcelCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewCancelParcelCommandHandler creates a handler for parcel cancellation.
// Requires a UoWFactory for transactional persistence operations.
func NewCancelParcelCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the cancellation and returns the cancelled parcel.
// Returns errs.ErrInvalidTransition once the parcel is delivered or already cancelled.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.lifecycle.Policy().Authorize(cmd.Actor(), services.ActionCancelParcel, services.Target{}); err != nil {
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

	openJobs, err := uow.JobRepository().GetOpenByParcelForUpdate(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	tr, err := h.lifecycle.CancelParcel(cmd.Actor(), p, openJobs, cmd.Reason())
	if err != nil {
		return nil, err
	}

	if err = saveTransition(ctx, uow, tr, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
