// Package trackingrepo appends tracking events.
package trackingrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventDTO is the row of the tracking_events table.
type EventDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	OccurredAt time.Time      `gorm:"type:timestamptz;not null"`
	Label      string         `gorm:"type:varchar(100);not null"`
	Notes      string         `gorm:"type:text;not null"`
	Location   string         `gorm:"type:varchar(255);not null"`
	ProofRefs  pq.StringArray `gorm:"type:text[];not null"`
	RecordedBy *uuid.UUID     `gorm:"type:uuid"`
}

// TableName specifies the database table name for tracking events.
func (EventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(e *tracking.Event) EventDTO {
	var recordedBy *uuid.UUID
	if by := e.RecordedBy(); by != nil {
		raw := by.Bytes()
		recordedBy = &raw
	}

	refs := e.ProofRefs()
	if refs == nil {
		refs = []string{}
	}

	return EventDTO{
		ID:         e.ID().Bytes(),
		ParcelID:   e.ParcelID().Bytes(),
		OccurredAt: e.OccurredAt(),
		Label:      e.Label(),
		Notes:      e.Notes(),
		Location:   e.Location(),
		ProofRefs:  pq.StringArray(refs),
		RecordedBy: recordedBy,
	}
}
