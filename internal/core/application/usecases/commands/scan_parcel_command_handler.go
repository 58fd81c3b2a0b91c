package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ScanParcelCommandHandler records the pickup scan. The parcel moves to
// picked_up and the job goes en_route.
type ScanParcelCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewScanParcelCommandHandler creates a handler for pickup scans.
// Requires a UoWFactory for transactional persistence operations.
func NewScanParcelCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) ScanParcelCommandHandler {
	return ScanParcelCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the scan and returns the picked-up parcel.
// Returns errs.ErrUnauthorized when the actor is not the job's driver.
func (h ScanParcelCommandHandler) Handle(ctx context.Context, cmd ScanParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, j, err := lockJob(ctx, uow, cmd.JobID())
	if err != nil {
		return nil, err
	}

	tr, err := h.lifecycle.ScanParcel(cmd.Actor(), p, j)
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
