package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// PurgePublishedOutboxCommandHandler deletes relayed outbox messages past their retention.
type PurgePublishedOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	clock      kernel.Clock
}

// NewPurgePublishedOutboxCommandHandler creates a handler for outbox cleanup.
func NewPurgePublishedOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	clock kernel.Clock,
) PurgePublishedOutboxCommandHandler {
	return PurgePublishedOutboxCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle deletes the expired messages and returns how many were removed.
func (h PurgePublishedOutboxCommandHandler) Handle(ctx context.Context, cmd PurgePublishedOutboxCommand) (int64, error) {
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

	cutoff := h.clock.Now().Add(-cmd.Retention())

	n, err := uow.OutboxRepository().DeletePublishedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
