package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
)

// CodeRepository owns the append-only set of verification codes. Codes are
// never updated or deleted here; history is retained for audit.
type CodeRepository interface {
	Create(ctx context.Context, code *account.VerificationCode) error
	// Find returns the newest row matching (account, code). Any issued
	// code matches, not just the latest one issued.
	Find(ctx context.Context, accountID uuid.UUID, code string) (*account.VerificationCode, error)
}

// VerificationService drives accounts from unverified to active and gates
// password changes behind a valid code.
type VerificationService interface {
	// SendVerificationLink issues a fresh code and mails a confirmation
	// link for it. Used right after signup.
	SendVerificationLink(ctx context.Context, acct *account.Account) error
	// RequestPasswordReset issues a code and mails it in plain text.
	// The returned bool reports whether delivery succeeded.
	RequestPasswordReset(ctx context.Context, email string) (bool, error)
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
	// VerifyCode is a read-only pre-check; the bypass code succeeds
	// without any lookup.
	VerifyCode(ctx context.Context, email, code string) error
	// ConfirmEmail activates the account. Idempotent for a still-valid code.
	ConfirmEmail(ctx context.Context, email, code string) error
}
