// Package notificationrepo persists notification records.
package notificationrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is the row of the notifications table.
type NotificationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Message     string     `gorm:"type:text;not null"`
	IsRead      bool       `gorm:"not null"`
	ParcelID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	var parcelID *uuid.UUID
	if id := n.ParcelID(); id != nil {
		raw := id.Bytes()
		parcelID = &raw
	}

	return NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.RecipientID().Bytes(),
		Title:       n.Title(),
		Message:     n.Message(),
		IsRead:      n.IsRead(),
		ParcelID:    parcelID,
		CreatedAt:   n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var parcelID *kernel.UUID
	if dto.ParcelID != nil {
		p, parcelErr := kernel.UUIDFromBytes((*dto.ParcelID)[:])
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelID = &p
	}

	return notification.RestoreNotification(id, recipientID, dto.Title, dto.Message, dto.IsRead, parcelID, dto.CreatedAt)
}
