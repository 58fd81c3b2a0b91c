// Package outboxrepo stores messages written alongside the state change they
// describe, for later relay to the broker.
package outboxrepo

import (
	"time"

	"parceltrack/internal/core/ports"
)

// MessageDTO is the row of the outbox_messages table. PublishedAt stays
// null until the relay has handed the message to the broker.
type MessageDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Topic       string     `gorm:"type:varchar(255);not null"`
	MessageKey  string     `gorm:"type:varchar(255);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	PublishedAt *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func toPort(dto MessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:        dto.ID,
		Topic:     dto.Topic,
		Key:       dto.MessageKey,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
	}
}
