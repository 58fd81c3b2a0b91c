package driver_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	userID := kernel.NewUUID()

	d, err := driver.NewDriver(userID, "  White van, AB12 CDE ")

	require.NoError(t, err)
	require.NoError(t, d.Validate())
	assert.True(t, d.UserID().IsEqual(userID))
	assert.Equal(t, "White van, AB12 CDE", d.VehicleDetails())
	assert.Nil(t, d.Location())
	assert.True(t, d.IsAvailable())
}

func TestNewDriver_RequiresUserID(t *testing.T) {
	d, err := driver.NewDriver(kernel.UUID{}, "bike")

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Nil(t, d)
}

func TestRestoreDriver_RejectsUnconstructedLocation(t *testing.T) {
	_, err := driver.RestoreDriver(kernel.NewUUID(), "bike", &kernel.Location{}, false)

	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}

func TestDriver_UpdateLocation(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "bike")
	require.NoError(t, err)

	first, _ := kernel.NewLocation(51.5, -0.12)
	second, _ := kernel.NewLocation(51.6, -0.10)

	require.NoError(t, d.UpdateLocation(first))
	require.NoError(t, d.UpdateLocation(second))

	require.NotNil(t, d.Location())
	assert.Equal(t, second, *d.Location())
}

func TestDriver_UpdateLocationRejectsZeroValue(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "bike")
	require.NoError(t, err)

	err = d.UpdateLocation(kernel.Location{})

	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	assert.Nil(t, d.Location())
}

func TestDriver_LocationIsACopy(t *testing.T) {
	loc, _ := kernel.NewLocation(10, 10)
	d, err := driver.RestoreDriver(kernel.NewUUID(), "bike", &loc, true)
	require.NoError(t, err)

	got := d.Location()
	*got = kernel.Location{}

	assert.NoError(t, d.Location().Validate())
}
