package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// NotificationService persists notifications and broadcasts them to
// currently connected listeners. Broadcast is fire-and-forget: there is no
// delivery guarantee and no replay for listeners that were offline.
type NotificationService struct {
	notifications ports.NotificationRepository
	bus           ports.EventBus
	log           zerolog.Logger
}

func NewNotificationService(
	notifications ports.NotificationRepository,
	bus ports.EventBus,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{notifications: notifications, bus: bus, log: log}
}

func (s *NotificationService) Create(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	n := &domain.Notification{
		Type:      in.Type,
		Message:   in.Message,
		UserID:    in.UserID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.notifications.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ports.Event{Name: domain.EventNewNotification, Payload: created})
	s.log.Debug().Str("notification_id", created.ID).Str("type", created.Type).Msg("notification broadcast")
	return created, nil
}

func (s *NotificationService) Get(ctx context.Context, id string) (*domain.Notification, error) {
	return s.notifications.FindByID(ctx, id)
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	return s.notifications.List(ctx)
}

func (s *NotificationService) Update(ctx context.Context, id string, in ports.UpdateNotificationInput) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		n.Type = *in.Type
	}
	if in.Message != nil {
		n.Message = *in.Message
	}

	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}

	s.bus.Publish(ports.Event{Name: domain.EventUpdateNotification, Payload: n})
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.notifications.Delete(ctx, id)
}
