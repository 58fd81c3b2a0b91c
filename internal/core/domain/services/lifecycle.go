package services

import (
	"fmt"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Transition is the outcome of an accepted lifecycle action: the mutated
// aggregates plus the records to append. Nothing in it has been persisted.
type Transition struct {
	Parcel       *parcel.Parcel
	NewJob       *job.Job
	ChangedJobs  []*job.Job
	Event        *tracking.Event
	Notification *notification.Notification
}

// Lifecycle maps (action, actor, current entities) to the next state and
// the audit records it emits. It performs no I/O. Every rejected action
// returns before any aggregate is mutated.
type Lifecycle struct {
	clock   kernel.Clock
	policy  AccessPolicy
	emitter Emitter
}

// NewLifecycle creates the engine with the default access policy.
// A nil clock selects kernel.SystemClock.
//
// Example:
//
//	lifecycle := services.NewLifecycle(kernel.SystemClock{})
//	handler := commands.NewBookParcelCommandHandler(uowFactory, lifecycle)
func NewLifecycle(clock kernel.Clock) *Lifecycle {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &Lifecycle{
		clock:   clock,
		policy:  NewAccessPolicy(),
		emitter: NewEmitter(),
	}
}

// Policy exposes the access policy used by the engine so read paths apply
// the same rules.
func (l *Lifecycle) Policy() AccessPolicy {
	return l.policy
}

// BookParcel creates a parcel owned by customerID. Customers book only for
// themselves.
func (l *Lifecycle) BookParcel(actor user.Actor, customerID kernel.UUID, details parcel.Details) (Transition, error) {
	if err := l.policy.Authorize(actor, ActionBookParcel, OwnedBy(customerID)); err != nil {
		return Transition{}, err
	}

	p, err := parcel.NewParcel(customerID, details, l.clock.Now())
	if err != nil {
		return Transition{}, err
	}

	return l.record(actor, p, l.emitter.ParcelBooked(p))
}

// PickupSupersededReason is recorded on a pickup job that never left its
// driver when a delivery driver is assigned over it.
const PickupSupersededReason = "superseded by delivery assignment"

// AssignDriver opens a job of jobType for the driver. The only precondition
// besides the controller role is that no job of the same type is open.
//
// A delivery assignment opens the tracking gate and closes the open pickup
// job, if any: an en-route pickup is completed as the hand-over, a pickup
// that was only assigned or accepted is failed with PickupSupersededReason.
func (l *Lifecycle) AssignDriver(
	actor user.Actor,
	p *parcel.Parcel,
	d *driver.Driver,
	driverName string,
	jobType job.Type,
	openJobs []*job.Job,
) (Transition, error) {
	if err := l.policy.Authorize(actor, ActionAssignDriver, Target{}); err != nil {
		return Transition{}, err
	}
	if err := jobType.Validate(); err != nil {
		return Transition{}, err
	}
	if err := d.Validate(); err != nil {
		return Transition{}, err
	}

	target := parcel.StatusAwaitingPickup
	if jobType == job.TypeDelivery {
		target = parcel.StatusOutForDelivery
	}

	var pickup *job.Job
	for _, j := range openJobs {
		if !j.IsOpen() || !j.ParcelID().IsEqual(p.ID()) {
			continue
		}
		if j.Type() == jobType {
			return Transition{}, errs.NewInvalidTransitionErrorWithReason("parcel", p.Status().String(), target.String(),
				fmt.Sprintf("an open %s job already exists", jobType))
		}
		if j.Type() == job.TypePickup {
			pickup = j
		}
	}
	if !p.Status().CanTransitionTo(target) {
		return Transition{}, errs.NewInvalidTransitionError("parcel", p.Status().String(), target.String())
	}

	at := p.StampFor(l.clock.Now())
	newJob, err := job.NewJob(p.ID(), d.UserID(), jobType, at)
	if err != nil {
		return Transition{}, err
	}

	var changed []*job.Job
	if pickup != nil {
		if pickup.Status() == job.StatusEnRoute {
			err = pickup.HandOver(at)
		} else {
			err = pickup.Fail(PickupSupersededReason)
		}
		if err != nil {
			return Transition{}, err
		}
		changed = append(changed, pickup)
	}

	if jobType == job.TypePickup {
		err = p.AssignPickup(d.UserID())
	} else {
		err = p.AssignDelivery(d.UserID())
	}
	if err != nil {
		return Transition{}, err
	}

	tr, err := l.record(actor, p, l.emitter.DriverAssigned(p, d.UserID(), driverName, jobType))
	if err != nil {
		return Transition{}, err
	}
	tr.NewJob = newJob
	tr.ChangedJobs = changed
	return tr, nil
}

// AcceptJob confirms an assigned job on behalf of its driver.
func (l *Lifecycle) AcceptJob(actor user.Actor, p *parcel.Parcel, j *job.Job) (Transition, error) {
	if err := l.authorizeJobAction(actor, ActionAcceptJob, p, j); err != nil {
		return Transition{}, err
	}

	if err := j.Accept(p.StampFor(l.clock.Now())); err != nil {
		return Transition{}, err
	}

	return l.recordJob(actor, p, j, l.emitter.JobAccepted(j, actor.Name()))
}

// ScanParcel puts the job en route. A pickup scan marks the parcel
// collected; a delivery scan keeps it out for delivery and opens the gate.
func (l *Lifecycle) ScanParcel(actor user.Actor, p *parcel.Parcel, j *job.Job) (Transition, error) {
	if err := l.authorizeJobAction(actor, ActionScanParcel, p, j); err != nil {
		return Transition{}, err
	}

	target := parcel.StatusOutForDelivery
	if j.Type() == job.TypePickup {
		target = parcel.StatusCollected
	}
	if !p.Status().CanTransitionTo(target) {
		return Transition{}, errs.NewInvalidTransitionError("parcel", p.Status().String(), target.String())
	}
	if err := j.Start(); err != nil {
		return Transition{}, err
	}

	var err error
	if j.Type() == job.TypePickup {
		err = p.MarkCollected()
	} else {
		err = p.MarkOutForDelivery()
	}
	if err != nil {
		return Transition{}, err
	}

	return l.recordJob(actor, p, j, l.emitter.ParcelScanned(p, j, actor.Name()))
}

// CompleteDelivery closes an en-route delivery job and delivers the parcel.
// proofRefs are attached to the emitted tracking event.
func (l *Lifecycle) CompleteDelivery(
	actor user.Actor,
	p *parcel.Parcel,
	j *job.Job,
	notes string,
	proofRefs []string,
) (Transition, error) {
	if err := l.authorizeJobAction(actor, ActionCompleteDelivery, p, j); err != nil {
		return Transition{}, err
	}
	if !p.Status().CanTransitionTo(parcel.StatusDelivered) {
		return Transition{}, errs.NewInvalidTransitionError("parcel", p.Status().String(), parcel.StatusDelivered.String())
	}

	if err := j.Complete(p.StampFor(l.clock.Now()), notes); err != nil {
		return Transition{}, err
	}
	if err := p.MarkDelivered(); err != nil {
		return Transition{}, err
	}

	return l.recordJob(actor, p, j, l.emitter.DeliveryCompleted(p, j.Notes()), tracking.WithProofRefs(proofRefs...))
}

// FailJob closes an open job as failed. A failed delivery moves the parcel
// to failed_delivery; a failed pickup only releases the driver so dispatch
// can re-assign.
func (l *Lifecycle) FailJob(actor user.Actor, p *parcel.Parcel, j *job.Job, reason string) (Transition, error) {
	if err := l.authorizeJobAction(actor, ActionFailJob, p, j); err != nil {
		return Transition{}, err
	}
	if !j.IsOpen() {
		return Transition{}, errs.NewInvalidTransitionError("job", j.Status().String(), job.StatusFailed.String())
	}
	if j.Type() == job.TypeDelivery && !p.Status().CanTransitionTo(parcel.StatusFailedDelivery) {
		return Transition{}, errs.NewInvalidTransitionError("parcel", p.Status().String(), parcel.StatusFailedDelivery.String())
	}

	if err := j.Fail(reason); err != nil {
		return Transition{}, err
	}
	if j.Type() == job.TypeDelivery {
		if err := p.MarkDeliveryFailed(); err != nil {
			return Transition{}, err
		}
	} else if driverID := p.CurrentDriver(); driverID != nil && j.IsAssignedTo(*driverID) {
		p.ReleaseDriver()
	}

	return l.recordJob(actor, p, j, l.emitter.JobFailed(p, j, actor.Name(), reason))
}

// CancelParcel cancels a non-terminal parcel and fails all its open jobs.
func (l *Lifecycle) CancelParcel(actor user.Actor, p *parcel.Parcel, openJobs []*job.Job, reason string) (Transition, error) {
	if err := l.policy.Authorize(actor, ActionCancelParcel, Target{}); err != nil {
		return Transition{}, err
	}
	if err := p.Cancel(); err != nil {
		return Transition{}, err
	}

	changed := make([]*job.Job, 0, len(openJobs))
	for _, j := range openJobs {
		if !j.IsOpen() || !j.ParcelID().IsEqual(p.ID()) {
			continue
		}
		if err := j.Fail(reason); err != nil {
			return Transition{}, err
		}
		changed = append(changed, j)
	}
	p.ReleaseDriver()

	tr, err := l.record(actor, p, l.emitter.ParcelCancelled(p, actor.Name(), reason))
	if err != nil {
		return Transition{}, err
	}
	tr.ChangedJobs = changed
	return tr, nil
}

// UpdateDriverLocation overwrites the driver's own position. It emits no
// audit record.
func (l *Lifecycle) UpdateDriverLocation(actor user.Actor, d *driver.Driver, location kernel.Location) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := l.policy.Authorize(actor, ActionUpdateLocation, BoundTo(d.UserID())); err != nil {
		return err
	}
	return d.UpdateLocation(location)
}

func (l *Lifecycle) authorizeJobAction(actor user.Actor, action Action, p *parcel.Parcel, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if err := l.policy.Authorize(actor, action, BoundTo(j.DriverID())); err != nil {
		return err
	}
	if !j.ParcelID().IsEqual(p.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("job",
			fmt.Errorf("job %s does not belong to parcel %s", j.ID(), p.ID()))
	}
	return nil
}

func (l *Lifecycle) recordJob(
	actor user.Actor,
	p *parcel.Parcel,
	j *job.Job,
	emission Emission,
	opts ...tracking.Option,
) (Transition, error) {
	tr, err := l.record(actor, p, emission, opts...)
	if err != nil {
		return Transition{}, err
	}
	tr.ChangedJobs = []*job.Job{j}
	return tr, nil
}

// record stamps the emission at max(now, parcel.updatedAt) and builds the
// event and notification.
func (l *Lifecycle) record(
	actor user.Actor,
	p *parcel.Parcel,
	emission Emission,
	opts ...tracking.Option,
) (Transition, error) {
	at := p.Touch(l.clock.Now())

	var recordedBy *kernel.UUID
	if !actor.IsAnonymous() {
		id := actor.ID()
		recordedBy = &id
	}

	event, err := tracking.NewEvent(p.ID(), at, emission.Label, emission.Notes, recordedBy, opts...)
	if err != nil {
		return Transition{}, err
	}

	tr := Transition{
		Parcel: p,
		Event:  event,
	}

	if emission.Notice != nil {
		parcelID := p.ID()
		tr.Notification, err = notification.NewNotification(
			emission.Notice.RecipientID,
			emission.Notice.Title,
			emission.Notice.Message,
			&parcelID,
			at,
		)
		if err != nil {
			return Transition{}, err
		}
	}

	return tr, nil
}
