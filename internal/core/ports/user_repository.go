package ports

import (
	"context"
	"time"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts, including the
// credential fields used by the reset flow.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)

	// FindByResetTokenHash matches only records whose reset window is
	// still open at the given instant.
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.User, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, hash string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id string) error

	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

// TailorRepository persists the business profile linked to tailor accounts.
type TailorRepository interface {
	Create(ctx context.Context, profile *domain.TailorProfile) (*domain.TailorProfile, error)
	FindByID(ctx context.Context, id string) (*domain.TailorProfile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.TailorProfile, error)
	List(ctx context.Context) ([]domain.TailorProfile, error)
	Delete(ctx context.Context, id string) error
}
