package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/services"
)

// FailJobCommandHandler marks open jobs failed and returns their parcel to the queue.
type FailJobCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewFailJobCommandHandler creates a handler for job failure.
// Requires a UoWFactory for transactional persistence operations.
func NewFailJobCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) FailJobCommandHandler {
	return FailJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the failure and returns the updated job.
// Returns errs.ErrInvalidTransition for jobs that are already closed.
func (h FailJobCommandHandler) Handle(ctx context.Context, cmd FailJobCommand) (*job.Job, error) {
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

	tr, err := h.lifecycle.FailJob(cmd.Actor(), p, j, cmd.Reason())
	if err != nil {
		return nil, err
	}

	if err = saveTransition(ctx, uow, tr, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
