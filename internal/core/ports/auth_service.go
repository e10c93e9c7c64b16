package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type SignupInput struct {
	Role            domain.Role
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string

	// Required only when Role is Tailor.
	BusinessName string
	Address      string
	Location     string
}

type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role // optional filter; empty matches any role
}

// AuthResult carries the freshly minted session token and the sanitized
// user view returned by signup and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)

	// RequestPasswordReset generates a one-time reset credential and
	// dispatches it out of band. A dispatch failure rolls back the
	// stored credential.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a raw reset token and sets the new password.
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// Mailer dispatches the raw reset token to the account owner.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// ResetThrottle rate-limits reset requests per email address.
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}
