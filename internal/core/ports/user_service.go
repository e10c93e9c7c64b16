package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

// UpdateUserInput carries the mutable user fields. Nil pointers leave the
// stored value untouched; a non-nil Password triggers exactly one re-hash.
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Password *string
}

// UserService exposes the account administration operations.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
