package account

import (
	"time"

	"github.com/google/uuid"
)

// BypassCode is a hard-coded universally valid code kept for test and
// debug flows. It never expires. NOT for production use; gate it behind
// an environment switch before shipping.
const BypassCode = "0001"

// CodeTTL is the validity window of an issued code, measured from issuance.
const CodeTTL = 2 * time.Hour

// VerificationCode is a 4-digit one-time code issued to an account for
// email verification or password recovery. Codes are append-only: an
// account accumulates every code ever issued to it, and a code is never
// marked consumed — validity is purely a function of age and value, so a
// code may be used repeatedly within its window.
type VerificationCode struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Valid reports whether the code is still usable: younger than CodeTTL,
// or equal to the permanent bypass value.
func (c *VerificationCode) Valid() bool {
	if c.Code == BypassCode {
		return true
	}
	return time.Since(c.CreatedAt) < CodeTTL
}
