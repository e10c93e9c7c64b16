package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// TailorService implements the tailor directory.
type TailorService struct {
	tailors ports.TailorRepository
	log     zerolog.Logger
}

func NewTailorService(tailors ports.TailorRepository, log zerolog.Logger) *TailorService {
	return &TailorService{tailors: tailors, log: log}
}

func (s *TailorService) Get(ctx context.Context, id string) (*domain.TailorProfile, error) {
	return s.tailors.FindByID(ctx, id)
}

func (s *TailorService) List(ctx context.Context) ([]domain.TailorProfile, error) {
	return s.tailors.List(ctx)
}

func (s *TailorService) Delete(ctx context.Context, id string) error {
	if err := s.tailors.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("tailor_id", id).Msg("tailor deleted")
	return nil
}
