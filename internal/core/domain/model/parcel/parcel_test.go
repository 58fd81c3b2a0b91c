package parcel_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func validDetails() parcel.Details {
	return parcel.Details{
		PickupAddress:   "1 High Street",
		DeliveryAddress: "2 Low Road",
		RecipientName:   "Ann Smith",
		RecipientPhone:  "+44 7700 900000",
		Description:     "Books",
		WeightKg:        2.5,
		Dimensions:      "30x20x10",
	}
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), validDetails(), bookedAt)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	customerID := kernel.NewUUID()

	p, err := parcel.NewParcel(customerID, validDetails(), bookedAt)

	require.NoError(t, err)
	require.NoError(t, p.Validate())
	require.NoError(t, p.TrackingCode().Validate())
	assert.Equal(t, parcel.StatusOrderPlaced, p.Status())
	assert.True(t, p.IsOwnedBy(customerID))
	assert.False(t, p.CanCustomerTrack())
	assert.Nil(t, p.CurrentDriver())
	assert.Equal(t, bookedAt, p.BookedAt())
	assert.Equal(t, bookedAt, p.UpdatedAt())
}

func TestNewParcel_Validation(t *testing.T) {
	t.Run("should require addresses and recipient", func(t *testing.T) {
		d := validDetails()
		d.PickupAddress = " "
		d.DeliveryAddress = ""
		d.RecipientName = ""

		p, err := parcel.NewParcel(kernel.NewUUID(), d, bookedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "pickup address")
		assert.Contains(t, err.Error(), "delivery address")
		assert.Contains(t, err.Error(), "recipient name")
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		for _, w := range []float64{0, -1} {
			d := validDetails()
			d.WeightKg = w

			_, err := parcel.NewParcel(kernel.NewUUID(), d, bookedAt)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "weight")
		}
	})

	t.Run("should require customer", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.UUID{}, validDetails(), bookedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customer")
	})
}

func TestParcel_PickupThenDelivery(t *testing.T) {
	p := newParcel(t)
	pickupDriver := kernel.NewUUID()
	deliveryDriver := kernel.NewUUID()

	require.NoError(t, p.AssignPickup(pickupDriver))
	assert.Equal(t, parcel.StatusAwaitingPickup, p.Status())
	assert.True(t, p.CurrentDriver().IsEqual(pickupDriver))
	assert.False(t, p.CanCustomerTrack())

	require.NoError(t, p.MarkCollected())
	assert.Equal(t, parcel.StatusCollected, p.Status())

	require.NoError(t, p.AssignDelivery(deliveryDriver))
	assert.Equal(t, parcel.StatusOutForDelivery, p.Status())
	assert.True(t, p.CurrentDriver().IsEqual(deliveryDriver))
	assert.True(t, p.CanCustomerTrack())

	require.NoError(t, p.MarkOutForDelivery())
	require.NoError(t, p.MarkDelivered())
	assert.Equal(t, parcel.StatusDelivered, p.Status())
	assert.True(t, p.CanCustomerTrack())
}

func TestParcel_PickupReassignment(t *testing.T) {
	p := newParcel(t)
	require.NoError(t, p.AssignPickup(kernel.NewUUID()))
	p.ReleaseDriver()
	assert.Nil(t, p.CurrentDriver())

	second := kernel.NewUUID()
	require.NoError(t, p.AssignPickup(second))

	assert.Equal(t, parcel.StatusAwaitingPickup, p.Status())
	assert.True(t, p.CurrentDriver().IsEqual(second))
}

func TestParcel_RejectedTransitionLeavesStateUntouched(t *testing.T) {
	p := newParcel(t)

	err := p.MarkDelivered()

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, parcel.StatusOrderPlaced, p.Status())

	require.NoError(t, p.Cancel())
	err = p.AssignPickup(kernel.NewUUID())

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, parcel.StatusCancelled, p.Status())
	assert.Nil(t, p.CurrentDriver())
}

func TestParcel_TrackingGateIsMonotonic(t *testing.T) {
	p := newParcel(t)
	require.NoError(t, p.AssignDelivery(kernel.NewUUID()))
	require.True(t, p.CanCustomerTrack())

	require.NoError(t, p.MarkDeliveryFailed())
	p.ReleaseDriver()

	assert.True(t, p.CanCustomerTrack())
	assert.Equal(t, parcel.StatusFailedDelivery, p.Status())
}

func TestParcel_Touch(t *testing.T) {
	p := newParcel(t)

	later := bookedAt.Add(time.Minute)
	assert.Equal(t, later, p.Touch(later))

	skewed := bookedAt.Add(-time.Hour)
	assert.Equal(t, later, p.Touch(skewed), "a clock behind the newest event must not go back in time")
	assert.Equal(t, later, p.UpdatedAt())
}

func TestRestoreParcel(t *testing.T) {
	id := kernel.NewUUID()
	code, err := kernel.TrackingCodeFromString("AB12CD34")
	require.NoError(t, err)
	driverID := kernel.NewUUID()

	p, err := parcel.RestoreParcel(id, code, kernel.NewUUID(), validDetails(),
		parcel.StatusOutForDelivery, &driverID, true, bookedAt, bookedAt.Add(time.Hour))

	require.NoError(t, err)
	assert.True(t, p.ID().IsEqual(id))
	assert.Equal(t, "AB12CD34", p.TrackingCode().String())
	assert.True(t, p.CurrentDriver().IsEqual(driverID))
	assert.Equal(t, bookedAt.Add(time.Hour), p.UpdatedAt())

	_, err = parcel.RestoreParcel(id, kernel.TrackingCode{}, kernel.NewUUID(), validDetails(),
		parcel.StatusUnknown, nil, false, bookedAt, bookedAt)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrTrackingCodeIsNotConstructed)
}

func TestParcel_StampForDoesNotMutate(t *testing.T) {
	p := newParcel(t)
	later := bookedAt.Add(time.Hour)

	assert.Equal(t, later, p.StampFor(later))
	assert.Equal(t, bookedAt, p.StampFor(bookedAt.Add(-time.Hour)))
	assert.Equal(t, bookedAt, p.UpdatedAt())
}
