// Package kafka relays outbox messages to Kafka.
package kafka

import (
	"context"
	"io"

	"parceltrack/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes outbox messages keyed by tracking code, so every event
// of one parcel lands on the same partition in order.
type Publisher struct {
	w messageWriter
}

// NewPublisher creates a publisher that waits for all in-sync replicas.
// Topics come from the messages, so one writer serves every topic.
func NewPublisher(brokers []string) *Publisher {
	return newPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	})
}

func newPublisherWithWriter(w messageWriter) *Publisher {
	return &Publisher{w: w}
}

// Publish writes the whole batch in one call. On error the caller keeps the
// messages unpublished and retries the batch later.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, kafka.Message{
			Topic: m.Topic,
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.CreatedAt,
			Headers: []kafka.Header{
				{Key: "content-type", Value: []byte("application/json")},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes pending writes and releases the broker connections.
func (p *Publisher) Close() error {
	if c, ok := p.w.(io.Closer); ok {
		return errors.Wrap(c.Close(), "kafka close")
	}
	return nil
}
