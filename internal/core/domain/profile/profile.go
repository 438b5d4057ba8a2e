package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
)

// Profile is the role-specific record bound 1:1 to an account. Exactly one
// variant exists per account, matching its role tag, and both rows are
// created in the same transaction. A profile cannot outlive its account
// and vice versa; the schema couples the two lifecycles.
type Profile interface {
	Kind() account.Role
	Owner() uuid.UUID
}

// Fan carries no attributes beyond the account relationship.
type Fan struct {
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (Fan) Kind() account.Role { return account.RoleFan }
func (f Fan) Owner() uuid.UUID { return f.AccountID }

// Artist additionally holds the public stage name and a free-text
// description of the artist's arts.
type Artist struct {
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	StageName string    `json:"stage_name" db:"stage_name"`
	Arts      string    `json:"arts" db:"arts"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (Artist) Kind() account.Role { return account.RoleArtist }
func (a Artist) Owner() uuid.UUID { return a.AccountID }

// ForAccount builds the profile variant matching the account's role tag.
func ForAccount(acct *account.Account, stageName, arts string) Profile {
	if acct.Role == account.RoleArtist {
		return Artist{AccountID: acct.ID, StageName: stageName, Arts: arts}
	}
	return Fan{AccountID: acct.ID}
}
