package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/services"
)

// AcceptJobCommandHandler moves an assigned job to accepted on behalf of its driver.
// The job row and its parcel are locked for the duration of the transaction.
type AcceptJobCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewAcceptJobCommandHandler creates a handler for job acceptance.
// Requires a UoWFactory for transactional persistence and the lifecycle service for the rules.
func NewAcceptJobCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the accept command and returns the updated job.
// Returns errs.ErrUnauthorized when the actor is not the job's driver and
// errs.ErrInvalidTransition when the job is no longer assigned.
func (h AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) (*job.Job, error) {
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

	tr, err := h.lifecycle.AcceptJob(cmd.Actor(), p, j)
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
