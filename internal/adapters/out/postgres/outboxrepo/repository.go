package outboxrepo

import (
	"context"
	"time"

	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Enqueue inserts messages in the caller's transaction.
func (r *GormOutboxRepository) Enqueue(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, MessageDTO{
			Topic:      m.Topic,
			MessageKey: m.Key,
			Payload:    m.Payload,
			CreatedAt:  m.CreatedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchUnpublished locks the oldest unpublished messages. Rows locked by a
// concurrent relay are skipped, so relays never publish the same batch at
// once.
func (r *GormOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}
	return messages, nil
}

// MarkPublished stamps the given messages with their publish time.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
}

// DeletePublishedBefore removes messages published before cutoff and
// returns how many rows were deleted.
func (r *GormOutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at < ?", cutoff).
		Delete(&MessageDTO{})
	return result.RowsAffected, result.Error
}
