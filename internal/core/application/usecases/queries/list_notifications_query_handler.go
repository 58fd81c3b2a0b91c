package queries

import (
	"context"
	"database/sql"

	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler reads the caller's inbox.
type ListNotificationsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListNotificationsQueryHandler creates a handler for the notification inbox.
func NewListNotificationsQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db, policy: policy}
}

// Handle returns the caller's notifications, newest first.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.policy.Authorize(actor, services.ActionReadNotifications, services.OwnedBy(actor.ID())); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			n.id,
			n.title,
			n.message,
			n.is_read,
			n.parcel_id,
			p.tracking_code,
			n.created_at
		FROM notifications n
		LEFT JOIN parcels p ON p.id = n.parcel_id
		WHERE n.recipient_id = ? AND (NOT n.is_read OR NOT ?)
		ORDER BY n.created_at DESC, n.id
	`, actor.ID().Bytes(), query.UnreadOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]NotificationView, 0)
	for rows.Next() {
		var (
			n        NotificationView
			id       uuid.UUID
			parcelID uuid.NullUUID
			code     sql.NullString
		)

		if err = rows.Scan(&id, &n.Title, &n.Message, &n.IsRead, &parcelID, &code, &n.CreatedAt); err != nil {
			return nil, err
		}

		if n.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if n.ParcelID, err = toNullableKernelUUID(parcelID); err != nil {
			return nil, err
		}
		n.TrackingCode = code.String

		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
