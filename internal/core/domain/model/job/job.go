package job

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrJobIsNotConstructed is returned when a Job is not created via constructor.
var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

// Job binds one driver to one leg (pickup or delivery) of a parcel.
//
// Business rules:
//   - a parcel has at most one open job per type
//   - only a delivery job can be completed by its driver
//   - a pickup job is completed implicitly when the delivery leg is handed over
//   - closed jobs (completed, failed) never change again
type Job struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	driverID    kernel.UUID
	jobType     Type
	status      Status
	assignedAt  time.Time
	acceptedAt  *time.Time
	completedAt *time.Time
	notes       string
	guard       guard.ConstructorGuard
}

// NewJob creates an assigned job.
func NewJob(parcelID, driverID kernel.UUID, jobType Type, assignedAt time.Time) (*Job, error) {
	return RestoreJob(kernel.NewUUID(), parcelID, driverID, jobType, StatusAssigned, assignedAt, nil, nil, "")
}

// RestoreJob rebuilds a job loaded from storage.
func RestoreJob(
	id, parcelID, driverID kernel.UUID,
	jobType Type,
	status Status,
	assignedAt time.Time,
	acceptedAt, completedAt *time.Time,
	notes string,
) (*Job, error) {
	j := &Job{
		assignedAt:  assignedAt,
		acceptedAt:  acceptedAt,
		completedAt: completedAt,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setParcelID(parcelID),
		j.setDriverID(driverID),
		jobType.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	j.jobType = jobType
	j.status = status

	return j, nil
}

// Validate ensures the job was created through a constructor.
// Returns ErrJobIsNotConstructed if validation fails.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// ID returns the unique identifier of the job.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// ParcelID returns the parcel this job belongs to.
func (j *Job) ParcelID() kernel.UUID {
	return j.parcelID
}

// DriverID returns the driver bound to the job.
func (j *Job) DriverID() kernel.UUID {
	return j.driverID
}

// Type returns the leg the job covers.
func (j *Job) Type() Type {
	return j.jobType
}

// Status returns the current job status.
func (j *Job) Status() Status {
	return j.status
}

// AssignedAt returns when the controller created the job.
func (j *Job) AssignedAt() time.Time {
	return j.assignedAt
}

// AcceptedAt returns when the driver accepted, or nil.
func (j *Job) AcceptedAt() *time.Time {
	return j.acceptedAt
}

// CompletedAt returns when the job was completed or handed over, or nil.
func (j *Job) CompletedAt() *time.Time {
	return j.completedAt
}

// Notes returns the completion notes or the failure reason.
func (j *Job) Notes() string {
	return j.notes
}

// IsOpen reports whether the job is assigned, accepted or en route.
//
// Example:
//
//	open, _ := uow.JobRepository().GetOpenByParcelForUpdate(ctx, parcelID)
//	for _, j := range open {
//	    if j.Type() == job.TypeDelivery && j.IsOpen() {
//	        // a delivery driver is already bound
//	    }
//	}
func (j *Job) IsOpen() bool {
	return j.status.IsOpen()
}

// IsAssignedTo reports whether the job is bound to the given driver.
func (j *Job) IsAssignedTo(driverID kernel.UUID) bool {
	return j.driverID.IsEqual(driverID)
}

// Accept confirms the assignment. Accepting twice is an invalid transition.
func (j *Job) Accept(at time.Time) error {
	if err := j.move(StatusAccepted); err != nil {
		return err
	}
	j.acceptedAt = &at
	return nil
}

// Start records the driver's scan and puts the job en route.
func (j *Job) Start() error {
	return j.move(StatusEnRoute)
}

// Complete closes an en-route delivery job with the driver's notes.
func (j *Job) Complete(at time.Time, notes string) error {
	if j.jobType != TypeDelivery {
		return errs.NewInvalidTransitionErrorWithReason("job", j.status.String(), StatusCompleted.String(),
			"only delivery jobs can be completed by the driver")
	}
	if err := j.move(StatusCompleted); err != nil {
		return err
	}
	j.completedAt = &at
	j.notes = strings.TrimSpace(notes)
	return nil
}

// HandOver closes an en-route pickup job when the delivery leg is assigned.
func (j *Job) HandOver(at time.Time) error {
	if j.jobType != TypePickup {
		return errs.NewInvalidTransitionErrorWithReason("job", j.status.String(), StatusCompleted.String(),
			"only pickup jobs are handed over")
	}
	if err := j.move(StatusCompleted); err != nil {
		return err
	}
	j.completedAt = &at
	return nil
}

// Fail closes an open job. The reason, when given, replaces the notes.
func (j *Job) Fail(reason string) error {
	if err := j.move(StatusFailed); err != nil {
		return err
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		j.notes = reason
	}
	return nil
}

func (j *Job) move(to Status) error {
	next, err := j.status.TransitionTo(to)
	if err != nil {
		return err
	}
	j.status = next
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcel", err)
	}
	j.parcelID = id
	return nil
}

func (j *Job) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	j.driverID = id
	return nil
}
