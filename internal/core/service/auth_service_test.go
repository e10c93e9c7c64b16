package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
	"github.com/tailormate/tailormate-api/pkg/password"
	"github.com/tailormate/tailormate-api/pkg/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.ResetTokenExpiry != nil {
		e := *u.ResetTokenExpiry
		clone.ResetTokenExpiry = &e
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetTokenHash(_ context.Context, hash string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash == hash && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, hash string, expiry time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetTokenHash = hash
	u.ResetTokenExpiry = &expiry
	return nil
}

func (r *stubUserRepo) ClearResetToken(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpiry = nil
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTailorRepo struct {
	profiles []*domain.TailorProfile
}

func (r *stubTailorRepo) Create(_ context.Context, p *domain.TailorProfile) (*domain.TailorProfile, error) {
	copy := *p
	copy.ID = "tailor_1"
	r.profiles = append(r.profiles, &copy)
	return &copy, nil
}

func (r *stubTailorRepo) FindByID(_ context.Context, id string) (*domain.TailorProfile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrTailorNotFound
}

func (r *stubTailorRepo) FindByUserID(_ context.Context, userID string) (*domain.TailorProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrTailorNotFound
}

func (r *stubTailorRepo) List(_ context.Context) ([]domain.TailorProfile, error) {
	out := make([]domain.TailorProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubTailorRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.profiles {
		if p.ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			return nil
		}
	}
	return domain.ErrTailorNotFound
}

type stubMailer struct {
	sent    []string // reset URLs, in order
	failErr error
}

func (m *stubMailer) SendPasswordReset(_, resetURL string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, resetURL)
	return nil
}

type stubThrottle struct {
	allow bool
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) {
	return t.allow, nil
}

func newAuthService(users ports.UserRepository, tailors ports.TailorRepository, mailer ports.Mailer, throttle ports.ResetThrottle) *AuthService {
	return NewAuthService(
		users, tailors,
		password.NewHasher(),
		token.NewManager("test-secret", time.Hour),
		mailer, throttle,
		30*time.Minute,
		"http://app.test",
		zerolog.Nop(),
	)
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubTailorRepo{}, &stubMailer{}, nil)

	result, err := svc.Signup(context.Background(), ports.SignupInput{
		FullName:        "Alice",
		Email:           "alice@example.com",
		Phone:           "5551234",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if result.User.Role != domain.RoleCustomer {
		t.Fatalf("expected default Customer role, got %s", result.User.Role)
	}

	stored, _ := repo.FindByEmail(context.Background(), "alice@example.com")
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_PasswordMismatch(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, nil)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:           "bob@example.com",
		Password:        "one",
		ConfirmPassword: "two",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, nil)

	in := ports.SignupInput{
		Email:           "bob@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_TailorProfile(t *testing.T) {
	tailors := &stubTailorRepo{}
	svc := newAuthService(newStubUserRepo(), tailors, &stubMailer{}, nil)

	result, err := svc.Signup(context.Background(), ports.SignupInput{
		Role:            domain.RoleTailor,
		FullName:        "Carla",
		Email:           "carla@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
		BusinessName:    "Carla's Atelier",
		Address:         "12 High St",
		Location:        "Lagos",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	profile, err := tailors.FindByUserID(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("expected linked tailor profile: %v", err)
	}
	if profile.BusinessName != "Carla's Atelier" {
		t.Fatalf("profile did not echo business name: %q", profile.BusinessName)
	}
}

func TestAuthService_Login_GenericError(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "dave@example.com",
		Password:        "goodpass",
		ConfirmPassword: "goodpass",
	})

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "x"})
	_, errWrongPw := svc.Login(context.Background(), ports.LoginInput{Email: "dave@example.com", Password: "badpass"})

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("error messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestAuthService_Login_RoleFilter(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "erin@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})

	if _, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "erin@example.com",
		Password: "pass123",
		Role:     domain.RoleTailor,
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected role mismatch to fail with generic error, got %v", err)
	}

	if _, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "erin@example.com",
		Password: "pass123",
		Role:     domain.RoleCustomer,
	}); err != nil {
		t.Fatalf("expected role match to succeed, got %v", err)
	}
}

func TestAuthService_RequestReset_StoresHashNotRaw(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{}
	svc := newAuthService(repo, &stubTailorRepo{}, mailer, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "fay@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})

	if err := svc.RequestPasswordReset(context.Background(), "fay@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one reset mail, got %d", len(mailer.sent))
	}

	raw := mailer.sent[0][strings.LastIndex(mailer.sent[0], "/")+1:]
	user, _ := repo.FindByEmail(context.Background(), "fay@example.com")
	if user.ResetTokenHash == "" || user.ResetTokenExpiry == nil {
		t.Fatalf("reset fields not stored")
	}
	if user.ResetTokenHash == raw {
		t.Fatalf("raw token persisted instead of its hash")
	}
}

func TestAuthService_RequestReset_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, nil)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_RequestReset_DispatchRollback(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{failErr: errors.New("smtp down")}
	svc := newAuthService(repo, &stubTailorRepo{}, mailer, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "gus@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})

	if err := svc.RequestPasswordReset(context.Background(), "gus@example.com"); !errors.Is(err, domain.ErrResetDispatch) {
		t.Fatalf("expected ErrResetDispatch, got %v", err)
	}

	user, _ := repo.FindByEmail(context.Background(), "gus@example.com")
	if user.ResetTokenHash != "" || user.ResetTokenExpiry != nil {
		t.Fatalf("reset fields not rolled back after dispatch failure")
	}
}

func TestAuthService_RequestReset_Throttled(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTailorRepo{}, &stubMailer{}, &stubThrottle{allow: false})
	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "hal@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})

	if err := svc.RequestPasswordReset(context.Background(), "hal@example.com"); !errors.Is(err, domain.ErrResetThrottled) {
		t.Fatalf("expected ErrResetThrottled, got %v", err)
	}
}

func TestAuthService_ResetPassword_FullFlow(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{}
	svc := newAuthService(repo, &stubTailorRepo{}, mailer, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "iris@example.com",
		Password:        "oldpass",
		ConfirmPassword: "oldpass",
	})
	if err := svc.RequestPasswordReset(context.Background(), "iris@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	raw := mailer.sent[0][strings.LastIndex(mailer.sent[0], "/")+1:]

	if err := svc.ResetPassword(context.Background(), raw, "newpass"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	// Old password is dead, new one works.
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "iris@example.com", Password: "oldpass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "iris@example.com", Password: "newpass"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Single use: a second redemption of the same token fails.
	if err := svc.ResetPassword(context.Background(), raw, "another"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected second redemption to fail, got %v", err)
	}
}

func TestAuthService_ResetPassword_WrongAndExpiredCollapse(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{}
	svc := newAuthService(repo, &stubTailorRepo{}, mailer, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email:           "jo@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	_ = svc.RequestPasswordReset(context.Background(), "jo@example.com")
	raw := mailer.sent[0][strings.LastIndex(mailer.sent[0], "/")+1:]

	errWrong := svc.ResetPassword(context.Background(), "deadbeef", "newpass")

	// Force the stored window into the past, then redeem the real token.
	user, _ := repo.FindByEmail(context.Background(), "jo@example.com")
	past := time.Now().UTC().Add(-time.Minute)
	_ = repo.SetResetToken(context.Background(), user.ID, user.ResetTokenHash, past)
	errExpired := svc.ResetPassword(context.Background(), raw, "newpass")

	if !errors.Is(errWrong, domain.ErrResetTokenInvalid) {
		t.Fatalf("wrong token: expected ErrResetTokenInvalid, got %v", errWrong)
	}
	if !errors.Is(errExpired, domain.ErrResetTokenInvalid) {
		t.Fatalf("expired token: expected ErrResetTokenInvalid, got %v", errExpired)
	}
	if errWrong.Error() != errExpired.Error() {
		t.Fatalf("wrong and expired must be indistinguishable: %q vs %q", errWrong, errExpired)
	}
}
