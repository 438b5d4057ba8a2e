package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/ports"
	"github.com/tunefans/identity/internal/infrastructure/db"
)

// CodeRepository persists verification codes. The table is append-only
// and read-mostly; rows are kept for audit and never deleted here.
type CodeRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCodeRepository creates a new verification code repository
func NewCodeRepository(database *db.Database, logger *logrus.Logger) ports.CodeRepository {
	return &CodeRepository{db: database, logger: logger}
}

// Create appends a new code row
func (r *CodeRepository) Create(ctx context.Context, c *account.VerificationCode) error {
	query := `
		INSERT INTO verification_codes (id, account_id, code, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.DB.ExecContext(ctx, query, c.ID, c.AccountID, c.Code, c.CreatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": c.AccountID}).WithError(err).Error("db: failed to create verification code")
		}
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"account_id": c.AccountID, "code_id": c.ID}).Debug("db: verification code issued")
	}
	return nil
}

// Find returns the newest row matching (account, code). An account may
// have been issued the same value more than once; the newest row is the
// one with the longest remaining validity, so matching it preserves the
// match-any-issued-code policy.
func (r *CodeRepository) Find(ctx context.Context, accountID uuid.UUID, code string) (*account.VerificationCode, error) {
	var c account.VerificationCode
	query := `
		SELECT id, account_id, code, created_at
		FROM verification_codes
		WHERE account_id = $1 AND code = $2
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.DB.GetContext(ctx, &c, query, accountID, code)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"account_id": accountID}).Debug("db: no matching verification code")
			}
			return nil, fmt.Errorf("%w: no matching code for account %s", account.ErrInvalidOrExpiredCode, accountID)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": accountID}).WithError(err).Error("db: failed to find verification code")
		}
		return nil, fmt.Errorf("failed to find verification code: %w", err)
	}

	return &c, nil
}
