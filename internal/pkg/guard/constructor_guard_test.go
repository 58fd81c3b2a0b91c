package guard_test

import (
	"errors"
	"testing"

	"parceltrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotBuilt := errors.New("parcel must be created via NewParcel")

	testCases := []struct {
		name     string
		guard    guard.ConstructorGuard
		given    error
		expected error
	}{
		{name: "constructed_with_custom_error", guard: guard.NewConstructorGuard(), given: errNotBuilt},
		{name: "constructed_with_nil_error", guard: guard.NewConstructorGuard()},
		{name: "zero_value_returns_custom_error", given: errNotBuilt, expected: errNotBuilt},
		{name: "zero_value_falls_back_to_default", expected: guard.ErrDefaultConstructorGuard},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.guard.Validate(tc.given)

			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tc.expected, err)
		})
	}
}

func TestConstructorGuard_EmbeddedInStruct(t *testing.T) {
	type command struct {
		jobID string
		guard guard.ConstructorGuard
	}

	built := command{jobID: "job-1", guard: guard.NewConstructorGuard()}
	var zero command

	require.NoError(t, built.guard.Validate(nil))
	require.ErrorIs(t, zero.guard.Validate(nil), guard.ErrDefaultConstructorGuard)
}
