package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type MeasurementInput struct {
	Height    float64
	Weight    float64
	ChestSize float64
	WaistSize float64
	HipSize   float64
}

// CreateClientInput optionally seeds the new client with measurements and
// an initial order batch, persisted to their own collections.
type CreateClientInput struct {
	UserID       string
	Name         string
	Measurements []MeasurementInput
	Orders       []OrderInput
}

// ClientResult is the created client together with any records seeded
// alongside it.
type ClientResult struct {
	Client       *domain.Client
	Measurements []domain.Measurement
	Orders       []domain.Order
}

type ClientService interface {
	Create(ctx context.Context, in CreateClientInput) (*ClientResult, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id string) error
}
