package ports

import (
	"context"
	"time"
)

// OutboxMessage is a message written in the same transaction as the change
// it describes and relayed to the broker afterwards.
type OutboxMessage struct {
	ID        int64
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository stores messages until the relay hands them to the broker.
type OutboxRepository interface {
	// FetchUnpublished locks up to limit unpublished messages, oldest
	// first, skipping rows locked by other relays.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []int64, at time.Time) error

	// DeletePublishedBefore removes messages published before the cutoff
	// and returns how many were removed. Unpublished messages are kept.
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MessagePublisher delivers outbox messages to the broker. Delivery is
// at-least-once: a failed batch is retried on the next relay run.
type MessagePublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}

// TrackingEventMessage is the JSON payload of a tracking event on the
// broker.
type TrackingEventMessage struct {
	EventID      string    `json:"event_id"`
	ParcelID     string    `json:"parcel_id"`
	TrackingCode string    `json:"tracking_code"`
	ParcelStatus string    `json:"parcel_status"`
	Label        string    `json:"status_update"`
	Notes        string    `json:"notes,omitempty"`
	Location     string    `json:"location,omitempty"`
	ProofRefs    []string  `json:"proof_refs,omitempty"`
	RecordedBy   string    `json:"recorded_by,omitempty"`
	OccurredAt   time.Time `json:"timestamp"`
}
