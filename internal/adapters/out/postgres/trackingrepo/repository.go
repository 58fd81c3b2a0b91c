package trackingrepo

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingEventRepository is append-only: events are never updated.
type GormTrackingEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingEventRepository creates a new GORM tracking event repository.
func NewGormTrackingEventRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingEventRepository {
	return &GormTrackingEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends an event to the log.
func (r *GormTrackingEventRepository) Add(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}
