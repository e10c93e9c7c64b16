package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// ClientService implements client records. A client can be created alone
// or seeded with measurements and an initial order batch in one request;
// the nested records land in their own collections.
type ClientService struct {
	clients      ports.ClientRepository
	measurements ports.MeasurementRepository
	orders       ports.OrderRepository
	log          zerolog.Logger
}

func NewClientService(
	clients ports.ClientRepository,
	measurements ports.MeasurementRepository,
	orders ports.OrderRepository,
	log zerolog.Logger,
) *ClientService {
	return &ClientService{clients: clients, measurements: measurements, orders: orders, log: log}
}

func (s *ClientService) Create(ctx context.Context, in ports.CreateClientInput) (*ports.ClientResult, error) {
	client, err := s.clients.Create(ctx, &domain.Client{UserID: in.UserID, Name: in.Name})
	if err != nil {
		return nil, err
	}

	result := &ports.ClientResult{Client: client}

	if len(in.Measurements) > 0 {
		ms := make([]*domain.Measurement, 0, len(in.Measurements))
		for _, m := range in.Measurements {
			ms = append(ms, &domain.Measurement{
				ClientID:  client.ID,
				Height:    m.Height,
				Weight:    m.Weight,
				ChestSize: m.ChestSize,
				WaistSize: m.WaistSize,
				HipSize:   m.HipSize,
			})
		}
		created, err := s.measurements.CreateMany(ctx, ms)
		if err != nil {
			return nil, err
		}
		result.Measurements = created
	}

	if len(in.Orders) > 0 {
		now := time.Now().UTC()
		os := make([]*domain.Order, 0, len(in.Orders))
		for _, o := range in.Orders {
			status := o.Status
			if status == "" {
				status = domain.OrderPending
			}
			if !status.Valid() {
				return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, o.Status)
			}
			order := &domain.Order{
				ClientID:   client.ID,
				Items:      o.Items,
				Status:     status,
				CreatedAt:  now,
				FinishDate: o.FinishDate,
			}
			if err := order.CheckFinishDate(); err != nil {
				return nil, err
			}
			os = append(os, order)
		}
		created, err := s.orders.CreateMany(ctx, os)
		if err != nil {
			return nil, err
		}
		result.Orders = created
	}

	s.log.Info().
		Str("client_id", client.ID).
		Int("measurements", len(result.Measurements)).
		Int("orders", len(result.Orders)).
		Msg("client created")
	return result, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}
