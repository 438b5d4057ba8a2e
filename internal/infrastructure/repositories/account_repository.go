package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/domain/profile"
	"github.com/tunefans/identity/internal/core/ports"
	"github.com/tunefans/identity/internal/infrastructure/db"
)

// AccountRepository implements the account repository interface
type AccountRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(database *db.Database, logger *logrus.Logger) ports.AccountRepository {
	return &AccountRepository{
		db:     database,
		logger: logger,
	}
}

// CreateWithProfile inserts the account row and its role profile row in a
// single transaction. A unique-index violation on email surfaces as
// ErrDuplicateAccount so concurrent signups resolve to one winner.
func (r *AccountRepository) CreateWithProfile(ctx context.Context, a *account.Account, p profile.Profile) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	accountQuery := `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := tx.ExecContext(ctx, accountQuery,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Role, a.IsActive); err != nil {
		if isUniqueViolation(err) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"email": a.Email}).Debug("db: duplicate email on account insert")
			}
			return fmt.Errorf("%w: email %s", account.ErrDuplicateAccount, a.Email)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": a.ID, "email": a.Email}).WithError(err).Error("db: failed to create account")
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	switch prof := p.(type) {
	case profile.Artist:
		profileQuery := `
			INSERT INTO artist_profiles (account_id, stage_name, arts)
			VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, profileQuery, a.ID, prof.StageName, prof.Arts); err != nil {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"account_id": a.ID}).WithError(err).Error("db: failed to create artist profile")
			}
			return fmt.Errorf("failed to create artist profile: %w", err)
		}
	case profile.Fan:
		profileQuery := `INSERT INTO fan_profiles (account_id) VALUES ($1)`
		if _, err := tx.ExecContext(ctx, profileQuery, a.ID); err != nil {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"account_id": a.ID}).WithError(err).Error("db: failed to create fan profile")
			}
			return fmt.Errorf("failed to create fan profile: %w", err)
		}
	default:
		return fmt.Errorf("unknown profile kind %q", p.Kind())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account creation: %w", err)
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"account_id": a.ID, "email": a.Email, "role": a.Role}).Info("db: account and profile created")
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var a account.Account
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &a, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"account_id": id}).Debug("db: account not found by ID")
			}
			return nil, fmt.Errorf("%w: id %s", account.ErrAccountNotFound, id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": id}).WithError(err).Error("db: failed to get account by ID")
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return &a, nil
}

// GetByEmail retrieves an account by its case-normalized email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var a account.Account
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at
		FROM accounts
		WHERE email = $1`

	err := r.db.DB.GetContext(ctx, &a, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"email": email}).Debug("db: account not found by email")
			}
			return nil, fmt.Errorf("%w: email %s", account.ErrAccountNotFound, email)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("db: failed to get account by email")
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &a, nil
}

// Update updates an existing account
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, is_active = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Role, a.IsActive, a.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": a.ID}).WithError(err).Error("db: failed to update account")
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"account_id": a.ID}).Debug("db: update affected 0 rows - account not found")
		}
		return fmt.Errorf("%w: id %s", account.ErrAccountNotFound, a.ID)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
