package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	Delete(ctx context.Context, id string) error
}

type NotificationInput struct {
	Type    string
	Message string
	UserID  string
}

type UpdateNotificationInput struct {
	Type    *string
	Message *string
}

type NotificationService interface {
	// Create persists the notification and broadcasts a newNotification
	// event to currently connected listeners.
	Create(ctx context.Context, in NotificationInput) (*domain.Notification, error)

	Get(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)

	// Update persists the change and broadcasts updateNotification.
	Update(ctx context.Context, id string, in UpdateNotificationInput) (*domain.Notification, error)

	Delete(ctx context.Context, id string) error
}
