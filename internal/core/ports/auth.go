package ports

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
)

// Claims are the JWT claims issued at login. Role and the active flag are
// how the rest of the platform consumes this subsystem's state.
type Claims struct {
	AccountID uuid.UUID    `json:"account_id"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthTokens is the login response payload.
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthService defines the interface for credential checks and token issuance
type AuthService interface {
	Login(ctx context.Context, req *account.LoginRequest) (*AuthTokens, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
