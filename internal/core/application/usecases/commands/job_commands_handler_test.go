package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectLockJob registers the lock sequence every job action starts with.
func expectLockJob(r repos, p *parcel.Parcel, j *job.Job) []*mock.Call {
	ctx := mock.Anything
	return []*mock.Call{
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		r.parcels.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		r.jobs.On("GetForUpdate", ctx, j.ID()).Return(j, nil).Once(),
	}
}

func TestAcceptJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusAwaitingPickup, &driverID, false)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusAssigned)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls,
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.jobs.On("Update", ctx, j).Return(nil).Once(),
		r.events.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	cmd, err := commands.NewAcceptJobCommand(drv, j.ID())
	require.NoError(t, err)

	handler := commands.NewAcceptJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, job.StatusAccepted, got.Status())
	require.NotNil(t, got.AcceptedAt())
	assert.Equal(t, fixedNow, *got.AcceptedAt())
	assert.Equal(t, parcel.StatusAwaitingPickup, p.Status())
	r.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_OtherDriverUnauthorized(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusAwaitingPickup, &driverID, false)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusAssigned)
	updatedAt := p.UpdatedAt()

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls, r.uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)

	cmd, err := commands.NewAcceptJobCommand(newDriverActor(), j.ID())
	require.NoError(t, err)

	handler := commands.NewAcceptJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, job.StatusAssigned, j.Status())
	assert.Equal(t, updatedAt, p.UpdatedAt())
	r.events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
	r.assertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_ReacceptRejected(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusAwaitingPickup, &driverID, false)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusAccepted)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls, r.uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)

	cmd, err := commands.NewAcceptJobCommand(drv, j.ID())
	require.NoError(t, err)

	handler := commands.NewAcceptJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	r.events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestScanParcelCommandHandler_Handle_PickupCollects(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusAwaitingPickup, &driverID, false)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusAccepted)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls,
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.jobs.On("Update", ctx, j).Return(nil).Once(),
		r.events.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once(),
		r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	cmd, err := commands.NewScanParcelCommand(drv, j.ID())
	require.NoError(t, err)

	handler := commands.NewScanParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusCollected, got.Status())
	assert.False(t, got.CanCustomerTrack())
	assert.Equal(t, job.StatusEnRoute, j.Status())
	r.assertExpectations(t)
}

func TestScanParcelCommandHandler_Handle_CompletedJobRejected(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusOutForDelivery, &driverID, true)
	j := restoreJob(t, p, driverID, job.TypeDelivery, job.StatusCompleted)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls, r.uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)

	cmd, err := commands.NewScanParcelCommand(drv, j.ID())
	require.NoError(t, err)

	handler := commands.NewScanParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusOutForDelivery, &driverID, true)
	j := restoreJob(t, p, driverID, job.TypeDelivery, job.StatusEnRoute)

	var event *tracking.Event
	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls,
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.jobs.On("Update", ctx, j).Return(nil).Once(),
		r.events.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).
			Run(func(args mock.Arguments) { event = args.Get(1).(*tracking.Event) }).
			Return(nil).Once(),
		r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	cmd, err := commands.NewCompleteDeliveryCommand(drv, j.ID(), "Left with neighbour",
		[]string{"proofs/photo.jpg", "proofs/signature.png"})
	require.NoError(t, err)

	handler := commands.NewCompleteDeliveryCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusDelivered, got.Status())
	assert.Equal(t, job.StatusCompleted, j.Status())
	assert.Equal(t, "Left with neighbour", j.Notes())
	require.NotNil(t, event)
	assert.Equal(t, "Delivered successfully", event.Label())
	assert.Equal(t, []string{"proofs/photo.jpg", "proofs/signature.png"}, event.ProofRefs())
	r.assertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_PickupJobRejected(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusOutForDelivery, &driverID, true)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusEnRoute)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls, r.uow.On("Rollback", ctx).Return(nil).Once())
	mock.InOrder(calls...)

	cmd, err := commands.NewCompleteDeliveryCommand(drv, j.ID(), "", nil)
	require.NoError(t, err)

	handler := commands.NewCompleteDeliveryCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, parcel.StatusOutForDelivery, p.Status())
	r.assertExpectations(t)
}

func TestFailJobCommandHandler_Handle_ControllerFailsDelivery(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusOutForDelivery, &driverID, true)
	j := restoreJob(t, p, driverID, job.TypeDelivery, job.StatusEnRoute)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls,
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.jobs.On("Update", ctx, j).Return(nil).Once(),
		r.events.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.notifications.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	cmd, err := commands.NewFailJobCommand(newController(), j.ID(), "recipient absent")
	require.NoError(t, err)

	handler := commands.NewFailJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, job.StatusFailed, got.Status())
	assert.Equal(t, parcel.StatusFailedDelivery, p.Status())
	assert.True(t, p.CanCustomerTrack())
	r.assertExpectations(t)
}

func TestFailJobCommandHandler_Handle_PickupReleasesDriver(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	driverID := drv.ID()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusAwaitingPickup, &driverID, false)
	j := restoreJob(t, p, driverID, job.TypePickup, job.StatusAssigned)

	r := newRepos()
	calls := expectLockJob(r, p, j)
	calls = append(calls,
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.jobs.On("Update", ctx, j).Return(nil).Once(),
		r.events.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	cmd, err := commands.NewFailJobCommand(drv, j.ID(), "")
	require.NoError(t, err)

	handler := commands.NewFailJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusAwaitingPickup, p.Status())
	assert.Nil(t, p.CurrentDriver())
	r.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestJobCommandHandlers_JobNotFound(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	p := restoreParcel(t, newCustomer().ID(), parcel.StatusOrderPlaced, nil, false)
	j := restoreJob(t, p, drv.ID(), job.TypePickup, job.StatusAssigned)

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.jobs.On("Get", ctx, j.ID()).Return(nil, errs.NewObjectNotFoundError("job", j.ID())).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewAcceptJobCommand(drv, j.ID())
	require.NoError(t, err)

	handler := commands.NewAcceptJobCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	r.assertExpectations(t)
}
