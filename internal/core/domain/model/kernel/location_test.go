package kernel_test

import (
	"math"
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   error
	}{
		{name: "city centre", latitude: 51.5072, longitude: -0.1276},
		{name: "lower bounds", latitude: kernel.LatitudeMin, longitude: kernel.LongitudeMin},
		{name: "upper bounds", latitude: kernel.LatitudeMax, longitude: kernel.LongitudeMax},
		{name: "latitude too small", latitude: -90.5, longitude: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "latitude too large", latitude: 90.5, longitude: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "longitude too small", latitude: 0, longitude: -180.1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "longitude too large", latitude: 0, longitude: 180.1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "latitude is NaN", latitude: math.NaN(), longitude: 0, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)

			if tt.wantErr != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errs.IsValidation(err))
				assert.Equal(t, kernel.Location{}, loc)
				return
			}

			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.latitude, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 1e-9)
		})
	}
}

func TestNewLocation_ReportsBothAxes(t *testing.T) {
	_, err := kernel.NewLocation(100, 200)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestLocation_ZeroValueIsNotConstructed(t *testing.T) {
	var loc kernel.Location

	assert.ErrorIs(t, loc.Validate(), errs.ErrValueIsRequired)
}

func TestLocation_String(t *testing.T) {
	loc, err := kernel.NewLocation(1.5, -2.25)
	require.NoError(t, err)

	assert.Equal(t, "1.500000,-2.250000", loc.String())
}

func TestLocation_DistanceKm(t *testing.T) {
	berlin, err := kernel.NewLocation(52.5200, 13.4050)
	require.NoError(t, err)
	paris, err := kernel.NewLocation(48.8566, 2.3522)
	require.NoError(t, err)

	assert.InDelta(t, 878, berlin.DistanceKm(paris), 5)
	assert.InDelta(t, berlin.DistanceKm(paris), paris.DistanceKm(berlin), 1e-9)
	assert.Zero(t, berlin.DistanceKm(berlin))
}
