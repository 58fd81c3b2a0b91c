package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrMarkNotificationReadCommandIsNotConstructed is returned when MarkNotificationReadCommand is not created via constructor.
var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a recipient acknowledging a notification.
type MarkNotificationReadCommand struct {
	actor          user.Actor
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command for marking one notification read.
// Returns a ValueIsRequired error if notificationID is empty.
func NewMarkNotificationReadCommand(actor user.Actor, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return MarkNotificationReadCommand{}, errs.NewValueIsRequiredErrorWithCause("notification_id", err)
	}

	return MarkNotificationReadCommand{
		actor:          actor,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkNotificationReadCommandIsNotConstructed if validation fails.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// Actor returns the user acknowledging the notification.
func (c MarkNotificationReadCommand) Actor() user.Actor {
	return c.actor
}

// NotificationID returns the unique identifier for the notification.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
