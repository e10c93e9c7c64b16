package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// MeasurementService implements measurement sets taken for a client.
type MeasurementService struct {
	measurements ports.MeasurementRepository
	clients      ports.ClientRepository
	log          zerolog.Logger
}

func NewMeasurementService(
	measurements ports.MeasurementRepository,
	clients ports.ClientRepository,
	log zerolog.Logger,
) *MeasurementService {
	return &MeasurementService{measurements: measurements, clients: clients, log: log}
}

func (s *MeasurementService) CreateBatch(ctx context.Context, in ports.CreateMeasurementsInput) ([]domain.Measurement, error) {
	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	ms := make([]*domain.Measurement, 0, len(in.Measurements))
	for _, m := range in.Measurements {
		ms = append(ms, &domain.Measurement{
			ClientID:  in.ClientID,
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
	s.log.Info().Str("client_id", in.ClientID).Int("count", len(created)).Msg("measurements stored")
	return created, nil
}

func (s *MeasurementService) Get(ctx context.Context, id string) (*domain.Measurement, error) {
	return s.measurements.FindByID(ctx, id)
}

func (s *MeasurementService) ListByClient(ctx context.Context, clientID string) ([]domain.Measurement, error) {
	return s.measurements.FindByClient(ctx, clientID)
}

func (s *MeasurementService) Update(ctx context.Context, id string, in ports.MeasurementInput) (*domain.Measurement, error) {
	m, err := s.measurements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Height = in.Height
	m.Weight = in.Weight
	m.ChestSize = in.ChestSize
	m.WaistSize = in.WaistSize
	m.HipSize = in.HipSize

	if err := s.measurements.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MeasurementService) Delete(ctx context.Context, id string) error {
	return s.measurements.Delete(ctx, id)
}
