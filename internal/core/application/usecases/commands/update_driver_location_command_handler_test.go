package commands_test

import (
	"errors"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDriverLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	_, profile := restoreDriverUser(t, drv)

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("GetForUpdate", ctx, drv.ID()).Return(profile, nil).Once(),
		r.drivers.On("Update", ctx, profile).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateDriverLocationCommand(drv, 51.5072, -0.1276)
	require.NoError(t, err)

	handler := commands.NewUpdateDriverLocationCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, profile.Location())
	assert.InDelta(t, 51.5072, profile.Location().Latitude(), 1e-9)
	assert.InDelta(t, -0.1276, profile.Location().Longitude(), 1e-9)
	r.events.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestUpdateDriverLocationCommandHandler_Handle_CustomerUnauthorized(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateDriverLocationCommand(newCustomer(), 10, 10)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	handler := commands.NewUpdateDriverLocationCommandHandler(factory, services.NewLifecycle(fixedClock()))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateDriverLocationCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	drv := newDriverActor()
	_, profile := restoreDriverUser(t, drv)

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("GetForUpdate", ctx, drv.ID()).Return(profile, nil).Once(),
		r.drivers.On("Update", ctx, profile).Return(errors.New("update failed")).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateDriverLocationCommand(drv, 1, 2)
	require.NoError(t, err)

	handler := commands.NewUpdateDriverLocationCommandHandler(r.factory(), services.NewLifecycle(fixedClock()))
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "update failed")
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
	r.assertExpectations(t)
}
