package handler

import (
	"log/slog"
	"net/http"

	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/response"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for the notification feed handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns one page of the requester's notifications, localized.
func (h *NotificationHandler) List(c echo.Context) error {
	input := &usecase.ListNotificationsInput{
		OnlyUnread: c.QueryParam("onlyUnread") == "true",
		Limit:      intQueryParam(c, "limit", 50),
		Offset:     intQueryParam(c, "offset", 0),
	}

	output, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]map[string]any, 0, len(output.Notifications))
	for _, view := range output.Notifications {
		views = append(views, map[string]any{
			"id":        view.Notification.ID,
			"orderId":   view.Notification.OrderID,
			"eventType": view.Notification.EventType,
			"subject":   view.Subject,
			"message":   view.Message,
			"isRead":    view.Notification.IsRead,
			"createdAt": view.Notification.CreatedAt,
		})
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"notifications": views,
		"total":         output.Total,
		"unread":        output.Unread,
	}, "")
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid notification id")
	}

	if err := h.uc.MarkRead(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notificación leída")
}

// MarkAllRead marks every notification of the requester as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.uc.MarkAllRead(c.Request().Context(), middleware.CurrentUser(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notificaciones leídas")
}
