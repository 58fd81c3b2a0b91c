package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// RelayTrackingEventsCommandHandler forwards committed tracking events from
// the outbox to the message broker.
//
// Example:
//
//	handler := NewRelayTrackingEventsCommandHandler(outboxUoWFactory, publisher, clock)
//	cmd, _ := NewRelayTrackingEventsCommand(100)
//
//	n, err := handler.Handle(ctx, cmd)
type RelayTrackingEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	clock      kernel.Clock
}

// NewRelayTrackingEventsCommandHandler creates a handler for the outbox relay.
// Requires an OutboxUoWFactory, the broker publisher and a clock for publish times.
func NewRelayTrackingEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
	clock kernel.Clock,
) RelayTrackingEventsCommandHandler {
	return RelayTrackingEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle publishes one batch of unpublished outbox messages and returns how
// many were relayed. The batch stays locked until it is marked published,
// so a failed publish leaves it for the next run.
func (h RelayTrackingEventsCommandHandler) Handle(ctx context.Context, cmd RelayTrackingEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	messages, err := outbox.FetchUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err = outbox.MarkPublished(ctx, ids, h.clock.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
