package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/domain/profile"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// CreateWithProfile inserts the account and its role profile in one
	// transaction; either both rows exist afterwards or neither does.
	CreateWithProfile(ctx context.Context, acct *account.Account, prof profile.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	Update(ctx context.Context, acct *account.Account) error
}

// SignupResult is what provisioning returns: the created account plus the
// outcome of the best-effort verification mail.
type SignupResult struct {
	Account  *account.Account `json:"data"`
	Notified bool             `json:"notified"`
}

// AccountService defines the interface for account provisioning
type AccountService interface {
	Signup(ctx context.Context, req *account.SignupRequest) (*SignupResult, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*account.Account, error)
}
