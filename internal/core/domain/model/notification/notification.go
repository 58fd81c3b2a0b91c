package notification

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrNotificationIsNotConstructed is returned when a Notification is not created via constructor.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a message record addressed to one user. Delivery over
// push, e-mail or SMS happens elsewhere; only the recipient may mark it read.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	title       string
	message     string
	read        bool
	parcelID    *kernel.UUID
	createdAt   time.Time
	guard       guard.ConstructorGuard
}

// NewNotification creates an unread notification with a fresh identifier.
// parcelID is nil for notifications not tied to a parcel.
func NewNotification(
	recipientID kernel.UUID,
	title, message string,
	parcelID *kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), recipientID, title, message, false, parcelID, createdAt)
}

// RestoreNotification rebuilds a notification loaded from storage.
func RestoreNotification(
	id, recipientID kernel.UUID,
	title, message string,
	read bool,
	parcelID *kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	var titleErr, messageErr, parcelErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}
	if parcelID != nil {
		parcelErr = parcelID.Validate()
	}
	if err := errors.Join(id.Validate(), recipientID.Validate(), titleErr, messageErr, parcelErr); err != nil {
		return nil, err
	}

	return &Notification{
		id:          id,
		recipientID: recipientID,
		title:       title,
		message:     message,
		read:        read,
		parcelID:    parcelID,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the notification was created through a constructor.
// Returns ErrNotificationIsNotConstructed if validation fails.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the unique identifier of the notification.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the addressed user.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Title returns the short heading.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the body text.
func (n *Notification) Message() string {
	return n.message
}

// IsRead reports whether the recipient has acknowledged the notification.
func (n *Notification) IsRead() bool {
	return n.read
}

// ParcelID returns the related parcel, or nil.
func (n *Notification) ParcelID() *kernel.UUID {
	return n.parcelID
}

// CreatedAt returns when the notification was recorded.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the notification as read on behalf of userID. Marking an
// already read notification again is a no-op.
func (n *Notification) MarkRead(userID kernel.UUID) error {
	if !n.recipientID.IsEqual(userID) {
		return errs.NewUnauthorizedError(userID.String(), "mark another user's notification as read")
	}
	n.read = true
	return nil
}
