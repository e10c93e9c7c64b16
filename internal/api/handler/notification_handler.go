package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/internal/api/metrics"
	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// NotificationHandler manages broadcast notifications and the SSE stream
// that delivers them to connected clients.
type NotificationHandler struct {
	notificationService ports.NotificationService
	bus                 ports.EventBus
}

func NewNotificationHandler(notificationService ports.NotificationService, bus ports.EventBus) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, bus: bus}
}

type createNotificationRequest struct {
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId"`
}

type updateNotificationRequest struct {
	Type    *string `json:"type"`
	Message *string `json:"message"`
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// Create persists a notification and broadcasts it to listeners.
//
// @Summary      Create a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificationRequest  true  "Notification details"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  map[string]string
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.notificationService.Create(c.Request().Context(), ports.NotificationInput{
		Type:    req.Type,
		Message: req.Message,
		UserID:  req.UserID,
	})
	if err != nil {
		return err
	}

	metrics.NotificationsPublishedTotal.WithLabelValues(domain.EventNewNotification).Inc()
	return c.JSON(http.StatusCreated, n)
}

// Get returns a single notification.
//
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	n, err := h.notificationService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// List returns every stored notification.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationsResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.notificationService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: notifications})
}

// Update modifies a notification and broadcasts the change.
//
// @Summary      Update a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Notification ID"
// @Param        body  body      updateNotificationRequest  true  "Fields to change"
// @Success      200   {object}  domain.Notification
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notifications/{id} [put]
func (h *NotificationHandler) Update(c echo.Context) error {
	var req updateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	n, err := h.notificationService.Update(c.Request().Context(), c.Param("id"), ports.UpdateNotificationInput{
		Type:    req.Type,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.NotificationsPublishedTotal.WithLabelValues(domain.EventUpdateNotification).Inc()
	return c.JSON(http.StatusOK, n)
}

// Delete removes a notification.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.notificationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted"})
}

// Stream pushes notification events to the client over server-sent events.
// Delivery is at-most-once: events emitted before the subscription or after
// a dropped connection are never replayed.
//
// @Summary      Stream notification events
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "SSE stream"
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	events, cancel := h.bus.Subscribe(func(ev ports.Event) bool {
		return ev.Name == domain.EventNewNotification || ev.Name == domain.EventUpdateNotification
	})
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(ev.Payload)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", ev.Name, payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
