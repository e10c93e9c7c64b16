package domain

import (
	"errors"
	"time"
)

// Role determines what an account is allowed to do.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleTailor   Role = "Tailor"
	RoleAdmin    Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTailor, RoleAdmin:
		return true
	}
	return false
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("invalid or expired token")
	ErrResetDispatch      = errors.New("failed to send reset email")
	ErrResetThrottled     = errors.New("reset already requested, try again later")
	ErrTailorNotFound     = errors.New("tailor not found")
)

// User is an account in the system. The password is only ever held as a
// bcrypt hash; the reset-token pair is either fully set or fully absent.
type User struct {
	ID           string `json:"id"`
	Role         Role   `json:"role"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`

	// Business fields, present only when Role is Tailor.
	BusinessName string `json:"businessName,omitempty"`
	Address      string `json:"address,omitempty"`
	Location     string `json:"location,omitempty"`

	ResetTokenHash   string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TailorProfile is the business record linked to a User with Role=Tailor.
type TailorProfile struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Location     string `json:"location,omitempty"`
}
