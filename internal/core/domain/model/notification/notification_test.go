package notification_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC)

func TestNewNotification(t *testing.T) {
	recipient := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	n, err := notification.NewNotification(recipient, "Parcel Delivered", "Your parcel AB12CD34 has been delivered", &parcelID, createdAt)

	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.True(t, n.RecipientID().IsEqual(recipient))
	assert.True(t, n.ParcelID().IsEqual(parcelID))
	assert.False(t, n.IsRead())
	assert.Equal(t, createdAt, n.CreatedAt())
}

func TestNewNotification_Validation(t *testing.T) {
	_, err := notification.NewNotification(kernel.UUID{}, " ", "", nil, createdAt)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "message")
}

func TestNotification_MarkRead(t *testing.T) {
	recipient := kernel.NewUUID()
	n, err := notification.NewNotification(recipient, "t", "m", nil, createdAt)
	require.NoError(t, err)

	t.Run("someone else cannot mark it", func(t *testing.T) {
		err := n.MarkRead(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.False(t, n.IsRead())
	})

	t.Run("recipient marks it, twice", func(t *testing.T) {
		require.NoError(t, n.MarkRead(recipient))
		require.NoError(t, n.MarkRead(recipient))
		assert.True(t, n.IsRead())
	})
}
