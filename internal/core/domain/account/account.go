package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the authentication identity of the platform. It carries the
// role tag and the active flag that the rest of the system consumes; the
// role-specific profile data lives in the profile package.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Role string

const (
	RoleFan    Role = "fan"
	RoleArtist Role = "artist"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleFan, RoleArtist:
		return true
	default:
		return false
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupRequest represents the request to provision a new account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	StageName string `json:"stage_name,omitempty"`
	Arts      string `json:"arts,omitempty"`
}

// ForgotPasswordRequest represents the password reset confirmation payload
type ForgotPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyTokenRequest represents the code pre-check payload
type VerifyTokenRequest struct {
	Email string `json:"email"`
	Token string `json:"token" validate:"required"`
}

// LoginRequest represents the credential check payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
