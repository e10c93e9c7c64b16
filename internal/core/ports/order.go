package ports

import (
	"context"
	"time"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type OrderRepository interface {
	CreateMany(ctx context.Context, orders []*domain.Order) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByClient(ctx context.Context, clientID string) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

// OrderInput is a single order in a batch submission. Status defaults to
// Pending when empty.
type OrderInput struct {
	Items      string
	Status     domain.OrderStatus
	FinishDate *time.Time
}

type CreateOrdersInput struct {
	ClientID string
	Orders   []OrderInput
}

type UpdateOrderInput struct {
	Items      *string
	Status     *domain.OrderStatus
	FinishDate *time.Time
}

type OrderService interface {
	CreateBatch(ctx context.Context, in CreateOrdersInput) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Order, error)
	Update(ctx context.Context, id string, in UpdateOrderInput) (*domain.Order, error)

	// ToggleStatus flips Pending/Completed without accepting a target
	// value. Cancelled orders reject the toggle.
	ToggleStatus(ctx context.Context, id string) (*domain.Order, error)

	Delete(ctx context.Context, id string) error
}
