package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	var unreadOnly *bool
	if err := bindQuery(c, "unread_only", false, &unreadOnly); err != nil {
		return err
	}

	rows, err := s.h.ListNotifications.Handle(c.Request().Context(),
		queries.NewListNotificationsQuery(actorFrom(c), deref(unreadOnly)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotifications(rows))
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	id, err := bindPathUUID(c, "notificationId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationReadCommand(actorFrom(c), id)
	if err != nil {
		return err
	}

	n, err := s.h.MarkNotificationRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotification(n))
}
