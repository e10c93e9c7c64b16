package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// OrderService implements order CRUD and the Pending/Completed status
// toggle. Status changes emit a notification through the event bus.
type OrderService struct {
	orders        ports.OrderRepository
	clients       ports.ClientRepository
	notifications ports.NotificationService
	log           zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	clients ports.ClientRepository,
	notifications ports.NotificationService,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, clients: clients, notifications: notifications, log: log}
}

// CreateBatch persists a batch of orders for one client. Orders without an
// explicit status default to Pending.
func (s *OrderService) CreateBatch(ctx context.Context, in ports.CreateOrdersInput) ([]domain.Order, error) {
	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orders := make([]*domain.Order, 0, len(in.Orders))
	for _, o := range in.Orders {
		status := o.Status
		if status == "" {
			status = domain.OrderPending
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, o.Status)
		}
		order := &domain.Order{
			ClientID:   in.ClientID,
			Items:      o.Items,
			Status:     status,
			CreatedAt:  now,
			FinishDate: o.FinishDate,
		}
		if err := order.CheckFinishDate(); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	created, err := s.orders.CreateMany(ctx, orders)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", in.ClientID).Int("count", len(created)).Msg("orders created")
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) ListByClient(ctx context.Context, clientID string) ([]domain.Order, error) {
	return s.orders.FindByClient(ctx, clientID)
}

// Update applies an explicit mutation. Unlike Toggle it accepts any valid
// target status, which is the only way an order reaches Cancelled.
func (s *OrderService) Update(ctx context.Context, id string, in ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Items != nil {
		order.Items = *in.Items
	}
	if in.FinishDate != nil {
		order.FinishDate = in.FinishDate
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, *in.Status)
		}
		order.Status = *in.Status
	}
	if err := order.CheckFinishDate(); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ToggleStatus flips the order between Pending and Completed. It is a
// read-modify-write with no concurrency control: two racing toggles can
// leave the record in either state.
func (s *OrderService) ToggleStatus(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Toggle(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Msg("order status toggled")
	s.notify(ctx, order)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// notify broadcasts the status change. Failures are logged and swallowed;
// notification delivery is best-effort and must not fail the mutation.
func (s *OrderService) notify(ctx context.Context, order *domain.Order) {
	if s.notifications == nil {
		return
	}
	_, err := s.notifications.Create(ctx, ports.NotificationInput{
		Type:    "orderStatus",
		Message: fmt.Sprintf("Order %s is now %s", order.ID, order.Status),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to emit order notification")
	}
}
