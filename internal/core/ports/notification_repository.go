package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
)

// NotificationRepository persists notification records.
type NotificationRepository interface {
	Add(ctx context.Context, aggregate *notification.Notification) error
	Update(ctx context.Context, aggregate *notification.Notification) error
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)
}
