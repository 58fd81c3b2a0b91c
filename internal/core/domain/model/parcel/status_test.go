package parcel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []parcel.Status {
	return []parcel.Status{
		parcel.StatusOrderPlaced,
		parcel.StatusAwaitingPickup,
		parcel.StatusCollected,
		parcel.StatusOutForDelivery,
		parcel.StatusDelivered,
		parcel.StatusFailedDelivery,
		parcel.StatusCancelled,
	}
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, s := range allStatuses() {
		parsed, err := parcel.ParseStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.NoError(t, s.Validate())
	}

	_, err := parcel.ParseStatus("in_transit")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Error(t, parcel.StatusUnknown.Validate())
}

func TestStatus_Graph(t *testing.T) {
	allowed := map[parcel.Status][]parcel.Status{
		parcel.StatusOrderPlaced: {
			parcel.StatusAwaitingPickup, parcel.StatusOutForDelivery,
			parcel.StatusFailedDelivery, parcel.StatusCancelled,
		},
		parcel.StatusAwaitingPickup: {
			parcel.StatusAwaitingPickup, parcel.StatusCollected, parcel.StatusOutForDelivery,
			parcel.StatusFailedDelivery, parcel.StatusCancelled,
		},
		parcel.StatusCollected: {
			parcel.StatusOutForDelivery, parcel.StatusFailedDelivery, parcel.StatusCancelled,
		},
		parcel.StatusOutForDelivery: {
			parcel.StatusOutForDelivery, parcel.StatusDelivered,
			parcel.StatusFailedDelivery, parcel.StatusCancelled,
		},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := contains(allowed[from], to)

			got, err := from.TransitionTo(to)
			if want {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got)
				continue
			}

			require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", from, to)
			assert.Equal(t, parcel.StatusUnknown, got)
		}
	}
}

func TestStatus_NoDirectDelivery(t *testing.T) {
	assert.False(t, parcel.StatusOrderPlaced.CanTransitionTo(parcel.StatusDelivered))
	assert.False(t, parcel.StatusAwaitingPickup.CanTransitionTo(parcel.StatusDelivered))
	assert.False(t, parcel.StatusCollected.CanTransitionTo(parcel.StatusDelivered))
}

func TestStatus_TerminalStates(t *testing.T) {
	for _, s := range allStatuses() {
		terminal := s == parcel.StatusDelivered || s == parcel.StatusFailedDelivery || s == parcel.StatusCancelled
		assert.Equal(t, terminal, s.IsTerminal(), s.String())
	}
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Out for Delivery", parcel.StatusOutForDelivery.Label())
	assert.Equal(t, "Unknown", parcel.Status(42).Label())
}

func contains(list []parcel.Status, s parcel.Status) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
