package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
	"github.com/tailormate/tailormate-api/pkg/password"
	"github.com/tailormate/tailormate-api/pkg/token"
)

const defaultResetTTL = 30 * time.Minute

// AuthService implements signup, login, and the password-reset flow.
type AuthService struct {
	users    ports.UserRepository
	tailors  ports.TailorRepository
	hasher   *password.Hasher
	tokens   *token.Manager
	mailer   ports.Mailer
	throttle ports.ResetThrottle
	resetTTL time.Duration
	baseURL  string
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tailors ports.TailorRepository,
	hasher *password.Hasher,
	tokens *token.Manager,
	mailer ports.Mailer,
	throttle ports.ResetThrottle,
	resetTTL time.Duration,
	baseURL string,
	log zerolog.Logger,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &AuthService{
		users:    users,
		tailors:  tailors,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		throttle: throttle,
		resetTTL: resetTTL,
		baseURL:  baseURL,
		log:      log,
	}
}

// Signup registers a new account. Tailor accounts additionally get a
// linked TailorProfile echoing the business fields. The returned user view
// never contains the password hash.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, in.Role)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Role:         role,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == domain.RoleTailor {
		user.BusinessName = in.BusinessName
		user.Address = in.Address
		user.Location = in.Location
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleTailor {
		profile := &domain.TailorProfile{
			UserID:       created.ID,
			BusinessName: in.BusinessName,
			Address:      in.Address,
			Location:     in.Location,
		}
		if _, err := s.tailors.Create(ctx, profile); err != nil {
			s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to create tailor profile")
			return nil, err
		}
	}

	signed, err := s.tokens.Issue(created.ID, string(created.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user signed up")
	return &ports.AuthResult{Token: signed, User: created}, nil
}

// Login authenticates by email (and role, when supplied). A missing
// account and a wrong password both surface the same generic error so the
// response does not reveal which field was wrong.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	var (
		user *domain.User
		err  error
	)
	if in.Role != "" {
		user, err = s.users.FindByEmailAndRole(ctx, in.Email, in.Role)
	} else {
		user, err = s.users.FindByEmail(ctx, in.Email)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: signed, User: user}, nil
}

// RequestPasswordReset stores a hashed one-time reset credential with a
// fixed expiry window and mails the raw token. If the mail cannot be
// dispatched the stored credential is rolled back so no orphaned usable
// token remains.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if s.throttle != nil {
		ok, thrErr := s.throttle.Allow(ctx, email)
		if thrErr != nil {
			s.log.Warn().Err(thrErr).Msg("reset throttle check failed, continuing")
		} else if !ok {
			return domain.ErrResetThrottled
		}
	}

	raw, hash, err := generateResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().UTC().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return err
	}

	resetURL := s.baseURL + "/reset-password/" + raw
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset mail dispatch failed, clearing token")
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error().Err(clearErr).Str("user_id", user.ID).Msg("failed to clear reset token after dispatch failure")
		}
		return domain.ErrResetDispatch
	}

	s.log.Info().Str("user_id", user.ID).Time("expiry", expiry).Msg("password reset requested")
	return nil
}

// ResetPassword redeems a raw reset token. Wrong and expired tokens are
// deliberately indistinguishable to the caller. On success the new
// password is hashed and set and the reset fields are cleared, so the same
// token cannot be redeemed twice.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash := hashResetToken(rawToken)

	user, err := s.users.FindByResetTokenHash(ctx, hash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// generateResetToken returns a high-entropy raw token and its SHA-256 hex
// digest. Only the digest is ever persisted.
func generateResetToken() (raw, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	raw = hex.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
