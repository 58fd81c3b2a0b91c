package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// CompleteDeliveryCommandHandler closes a delivery job and marks its parcel delivered.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory, lifecycle)
//	cmd, _ := NewCompleteDeliveryCommand(driverActor, jobID, "left with neighbour", []string{"proof/123.jpg"})
//
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("completion failed: %w", err)
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
// Requires a UoWFactory for transactional persistence operations.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	lifecycle *services.Lifecycle,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the completion and returns the delivered parcel.
// The job must be en_route; any other status yields errs.ErrInvalidTransition.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*parcel.Parcel, error) {
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

	tr, err := h.lifecycle.CompleteDelivery(cmd.Actor(), p, j, cmd.Notes(), cmd.ProofRefs())
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
