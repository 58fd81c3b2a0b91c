package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrListNotificationsQueryIsNotConstructed is returned when ListNotificationsQuery is not created via constructor.
var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery returns the caller's own notifications, newest
// first.
type ListNotificationsQuery struct {
	actor      user.Actor
	unreadOnly bool

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates a query for the caller's notifications.
func NewListNotificationsQuery(actor user.Actor, unreadOnly bool) ListNotificationsQuery {
	return ListNotificationsQuery{
		actor:      actor,
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListNotificationsQueryIsNotConstructed if validation fails.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// Actor returns the recipient.
func (q ListNotificationsQuery) Actor() user.Actor {
	return q.actor
}

// UnreadOnly reports whether read notifications are left out.
func (q ListNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// NotificationView is a notification as shown in the recipient's inbox.
type NotificationView struct {
	ID           kernel.UUID
	Title        string
	Message      string
	IsRead       bool
	ParcelID     *kernel.UUID
	TrackingCode string
	CreatedAt    time.Time
}
