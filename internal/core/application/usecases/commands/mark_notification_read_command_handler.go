package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/services"
)

// MarkNotificationReadCommandHandler sets the read flag of a recipient's notification.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	policy     services.AccessPolicy
}

// NewMarkNotificationReadCommandHandler creates a handler for notification acknowledgement.
// Requires a NotificationUoWFactory and the access policy that checks ownership.
func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	policy services.AccessPolicy,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle marks the notification read and returns it. Marking twice is a no-op.
// Returns errs.ErrObjectNotFound for unknown IDs and errs.ErrUnauthorized when the
// actor is not the recipient.
func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()

	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	target := services.OwnedBy(n.RecipientID())
	if err = h.policy.Authorize(actor, services.ActionMarkNotificationRead, target); err != nil {
		return nil, err
	}

	if n.IsRead() {
		return n, nil
	}

	if err = n.MarkRead(actor.ID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
