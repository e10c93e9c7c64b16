package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	if o.FinishDate != nil {
		d := *o.FinishDate
		clone.FinishDate = &d
	}
	return &clone
}

func (r *stubOrderRepo) CreateMany(_ context.Context, orders []*domain.Order) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		r.nextID++
		copy := cloneOrder(o)
		copy.ID = fmt.Sprintf("order_%d", r.nextID)
		r.orders[copy.ID] = cloneOrder(copy)
		out = append(out, *copy)
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByClient(_ context.Context, clientID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo(ids ...string) *stubClientRepo {
	r := &stubClientRepo{clients: make(map[string]*domain.Client)}
	for _, id := range ids {
		r.clients[id] = &domain.Client{ID: id, UserID: "user_1", Name: "client " + id}
	}
	return r
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	copy := *client
	copy.ID = fmt.Sprintf("client_%d", len(r.clients)+1)
	r.clients[copy.ID] = &copy
	return &copy, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

// recordingNotifier captures notifications emitted by status changes.
type recordingNotifier struct {
	created []ports.NotificationInput
}

func (n *recordingNotifier) Create(_ context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	n.created = append(n.created, in)
	return &domain.Notification{ID: "n_1", Type: in.Type, Message: in.Message, UserID: in.UserID}, nil
}

func (n *recordingNotifier) Get(context.Context, string) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}

func (n *recordingNotifier) List(context.Context) ([]domain.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) Update(context.Context, string, ports.UpdateNotificationInput) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}

func (n *recordingNotifier) Delete(context.Context, string) error {
	return nil
}

func newOrderService(orders ports.OrderRepository, clients ports.ClientRepository, notifier ports.NotificationService) *OrderService {
	return NewOrderService(orders, clients, notifier, zerolog.Nop())
}

func TestOrderService_CreateBatch_DefaultsPending(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubClientRepo("client_1"), nil)

	created, err := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "client_1",
		Orders:   []ports.OrderInput{{Items: "two shirts"}},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if created[0].Status != domain.OrderPending {
		t.Fatalf("expected default Pending, got %s", created[0].Status)
	}
}

func TestOrderService_CreateBatch_UnknownClient(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubClientRepo(), nil)

	_, err := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "missing",
		Orders:   []ports.OrderInput{{Items: "a suit"}},
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestOrderService_CreateBatch_CompletedNeedsFinishDate(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubClientRepo("client_1"), nil)

	_, err := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "client_1",
		Orders:   []ports.OrderInput{{Items: "a suit", Status: domain.OrderCompleted}},
	})
	if !errors.Is(err, domain.ErrFinishDateRequired) {
		t.Fatalf("expected ErrFinishDateRequired, got %v", err)
	}
}

func TestOrderService_Toggle_Involution(t *testing.T) {
	repo := newStubOrderRepo()
	notifier := &recordingNotifier{}
	svc := newOrderService(repo, newStubClientRepo("client_1"), notifier)

	created, err := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "client_1",
		Orders:   []ports.OrderInput{{Items: "a dress"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created[0].ID

	toggled, err := svc.ToggleStatus(context.Background(), id)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if toggled.Status != domain.OrderCompleted {
		t.Fatalf("expected Completed, got %s", toggled.Status)
	}
	if toggled.FinishDate == nil {
		t.Fatalf("completing must stamp the finish date")
	}

	back, err := svc.ToggleStatus(context.Background(), id)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if back.Status != domain.OrderPending {
		t.Fatalf("double toggle must return to Pending, got %s", back.Status)
	}
	if back.FinishDate != nil {
		t.Fatalf("reverting must clear the finish date")
	}

	if len(notifier.created) != 2 {
		t.Fatalf("expected a notification per toggle, got %d", len(notifier.created))
	}
	if notifier.created[0].Type != "orderStatus" {
		t.Fatalf("unexpected notification type: %s", notifier.created[0].Type)
	}
}

func TestOrderService_Toggle_CancelledIsTerminal(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubClientRepo("client_1"), nil)

	created, _ := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "client_1",
		Orders:   []ports.OrderInput{{Items: "a coat"}},
	})
	id := created[0].ID

	cancelled := domain.OrderCancelled
	if _, err := svc.Update(context.Background(), id, ports.UpdateOrderInput{Status: &cancelled}); err != nil {
		t.Fatalf("update to Cancelled: %v", err)
	}

	if _, err := svc.ToggleStatus(context.Background(), id); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Update_CompletedNeedsFinishDate(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubClientRepo("client_1"), nil)

	created, _ := svc.CreateBatch(context.Background(), ports.CreateOrdersInput{
		ClientID: "client_1",
		Orders:   []ports.OrderInput{{Items: "trousers"}},
	})
	id := created[0].ID

	completed := domain.OrderCompleted
	if _, err := svc.Update(context.Background(), id, ports.UpdateOrderInput{Status: &completed}); !errors.Is(err, domain.ErrFinishDateRequired) {
		t.Fatalf("expected ErrFinishDateRequired, got %v", err)
	}

	finish := time.Now().UTC()
	updated, err := svc.Update(context.Background(), id, ports.UpdateOrderInput{Status: &completed, FinishDate: &finish})
	if err != nil {
		t.Fatalf("update with finish date: %v", err)
	}
	if updated.Status != domain.OrderCompleted {
		t.Fatalf("expected Completed, got %s", updated.Status)
	}
}
