package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

// TailorService exposes the tailor directory consumed by customers.
type TailorService interface {
	Get(ctx context.Context, id string) (*domain.TailorProfile, error)
	List(ctx context.Context) ([]domain.TailorProfile, error)
	Delete(ctx context.Context, id string) error
}
