package services_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatedDriver(t *testing.T, lat, lon float64, available bool) *driver.Driver {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	d, err := driver.RestoreDriver(kernel.NewUUID(), "van", &loc, available)
	require.NoError(t, err)
	return d
}

func TestDriverLocator_Nearest(t *testing.T) {
	center, err := kernel.NewLocation(52.5200, 13.4050)
	require.NoError(t, err)

	far := locatedDriver(t, 52.60, 13.40, true)       // ~8.9 km
	near := locatedDriver(t, 52.521, 13.406, true)    // ~0.1 km
	middle := locatedDriver(t, 52.53, 13.42, true)    // ~1.5 km
	busy := locatedDriver(t, 52.5201, 13.4051, false) // closest but unavailable
	outside := locatedDriver(t, 53.55, 9.99, true)    // Hamburg

	unlocated, err := driver.NewDriver(kernel.NewUUID(), "bike")
	require.NoError(t, err)

	drivers := []*driver.Driver{far, near, middle, busy, outside, unlocated}
	locator := services.NewDriverLocator()

	t.Run("should rank available drivers nearest first within radius", func(t *testing.T) {
		ranked, err := locator.Nearest(center, 10, drivers, 0)

		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.Same(t, near, ranked[0].Driver)
		assert.Same(t, middle, ranked[1].Driver)
		assert.Same(t, far, ranked[2].Driver)
		assert.Less(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
	})

	t.Run("should cut the result at limit", func(t *testing.T) {
		ranked, err := locator.Nearest(center, 10, drivers, 2)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Same(t, middle, ranked[1].Driver)
	})

	t.Run("should return empty when nobody is in range", func(t *testing.T) {
		ranked, err := locator.Nearest(center, 0.01, []*driver.Driver{far, outside}, 5)

		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("should reject a zero center", func(t *testing.T) {
		_, err := locator.Nearest(kernel.Location{}, 10, drivers, 0)

		assert.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})

	t.Run("should reject a zero driver", func(t *testing.T) {
		_, err := locator.Nearest(center, 10, []*driver.Driver{near, {}}, 0)

		assert.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
	})
}
