package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// jobCommand is the shared payload of the driver job actions.
type jobCommand struct {
	actor user.Actor
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func newJobCommand(actor user.Actor, jobID kernel.UUID) (jobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return jobCommand{}, errs.NewValueIsRequiredErrorWithCause("job_id", err)
	}
	return jobCommand{
		actor: actor,
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the driver or controller performing the action.
func (c jobCommand) Actor() user.Actor {
	return c.actor
}

// JobID returns the identifier of the job being acted on.
func (c jobCommand) JobID() kernel.UUID {
	return c.jobID
}

// lockJob loads the job to find its parcel, locks the parcel, then locks
// and re-reads the job. Parcel before job is the lock order of every
// command touching both rows.
func lockJob(ctx context.Context, uow UoW, jobID kernel.UUID) (*parcel.Parcel, *job.Job, error) {
	jobRepo := uow.JobRepository()

	j, err := jobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}

	p, err := uow.ParcelRepository().GetForUpdate(ctx, j.ParcelID())
	if err != nil {
		return nil, nil, err
	}

	if j, err = jobRepo.GetForUpdate(ctx, jobID); err != nil {
		return nil, nil, err
	}

	return p, j, nil
}
