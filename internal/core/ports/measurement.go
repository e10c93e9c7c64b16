package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type MeasurementRepository interface {
	CreateMany(ctx context.Context, measurements []*domain.Measurement) ([]domain.Measurement, error)
	FindByID(ctx context.Context, id string) (*domain.Measurement, error)
	FindByClient(ctx context.Context, clientID string) ([]domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) error
	Delete(ctx context.Context, id string) error
}

type CreateMeasurementsInput struct {
	ClientID     string
	Measurements []MeasurementInput
}

type MeasurementService interface {
	CreateBatch(ctx context.Context, in CreateMeasurementsInput) ([]domain.Measurement, error)
	Get(ctx context.Context, id string) (*domain.Measurement, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Measurement, error)
	Update(ctx context.Context, id string, in MeasurementInput) (*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
}
