package kernel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingCode(t *testing.T) {
	code := kernel.NewTrackingCode()

	require.NoError(t, code.Validate())
	assert.Len(t, code.String(), 8)
	assert.Regexp(t, `^[0-9A-F]{8}$`, code.String())
	assert.False(t, code.IsEqual(kernel.NewTrackingCode()))
}

func TestTrackingCodeFromString(t *testing.T) {
	t.Run("should normalise user input", func(t *testing.T) {
		code, err := kernel.TrackingCodeFromString("  ab12cd34 ")

		require.NoError(t, err)
		assert.Equal(t, "AB12CD34", code.String())
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.TrackingCodeFromString("   ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unexpected characters", func(t *testing.T) {
		_, err := kernel.TrackingCodeFromString("AB12;DROP")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject codes that are too short", func(t *testing.T) {
		_, err := kernel.TrackingCodeFromString("AB1")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTrackingCode_ZeroValueIsNotConstructed(t *testing.T) {
	var code kernel.TrackingCode

	assert.Equal(t, kernel.ErrTrackingCodeIsNotConstructed, code.Validate())
}
