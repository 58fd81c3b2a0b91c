package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newCustomer()
	cmd := commands.NewBookParcelCommand(customer, validDetails())

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.parcels.On("TrackingCodeExists", ctx, mock.Anything).Return(false, nil).Once(),
		r.parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		r.events.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once(),
		r.notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewBookParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	p, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusOrderPlaced, p.Status())
	assert.True(t, p.IsOwnedBy(customer.ID()))
	assert.False(t, p.CanCustomerTrack())
	r.assertExpectations(t)
}

func TestBookParcelCommandHandler_Handle_RegeneratesCollidingCode(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewBookParcelCommand(newCustomer(), validDetails())

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.parcels.On("TrackingCodeExists", ctx, mock.Anything).Return(true, nil).Once(),
		r.parcels.On("TrackingCodeExists", ctx, mock.Anything).Return(false, nil).Once(),
		r.parcels.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.events.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.notifications.On("Add", ctx, mock.Anything).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewBookParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	r.assertExpectations(t)
}

func TestBookParcelCommandHandler_Handle_ControllerCannotBook(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewBookParcelCommand(newController(), validDetails())

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewBookParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	r.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestBookParcelCommandHandler_Handle_AnonymousCannotBook(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewBookParcelCommand(user.Anonymous(), validDetails())

	r := newRepos()
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewBookParcelCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestBookParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockUoWFactory)
	handler := commands.NewBookParcelCommandHandler(factory, services.NewLifecycle(fixedClock()))
	_, err := handler.Handle(ctx, commands.BookParcelCommand{})

	require.ErrorIs(t, err, commands.ErrBookParcelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
