package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/ports"
	"github.com/tunefans/identity/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type VerificationService struct {
	accounts ports.AccountRepository
	codes    ports.CodeRepository
	email    ports.EmailService
	logger   *logrus.Logger
}

func NewVerificationService(accounts ports.AccountRepository, codes ports.CodeRepository, email ports.EmailService, logger *logrus.Logger) ports.VerificationService {
	return &VerificationService{
		accounts: accounts,
		codes:    codes,
		email:    email,
		logger:   logger,
	}
}

// issueCode creates and persists a fresh code for the account. History is
// append-only; older codes stay on record and keep their own validity.
func (s *VerificationService) issueCode(ctx context.Context, accountID uuid.UUID) (*account.VerificationCode, error) {
	value, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	code := &account.VerificationCode{
		ID:        uuid.New(),
		AccountID: accountID,
		Code:      value,
		CreatedAt: time.Now(),
	}

	if err := s.codes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to save verification code: %w", err)
	}

	return code, nil
}

// findValidCode looks up (account, code) and checks the validity window.
// Any issued code matches, not just the most recent one.
func (s *VerificationService) findValidCode(ctx context.Context, accountID uuid.UUID, code string) (*account.VerificationCode, error) {
	vc, err := s.codes.Find(ctx, accountID, code)
	if err != nil {
		return nil, fmt.Errorf("%w: no matching code", account.ErrInvalidOrExpiredCode)
	}
	if !vc.Valid() {
		return nil, fmt.Errorf("%w: code issued at %s", account.ErrInvalidOrExpiredCode, vc.CreatedAt.Format(time.RFC3339))
	}
	return vc, nil
}

// SendVerificationLink issues a code and mails the confirmation link for
// it. Callers decide whether a delivery failure is fatal; signup treats it
// as a soft warning.
func (s *VerificationService) SendVerificationLink(ctx context.Context, acct *account.Account) error {
	code, err := s.issueCode(ctx, acct.ID)
	if err != nil {
		return err
	}

	userName := fmt.Sprintf("%s %s", acct.FirstName, acct.LastName)
	if err := s.email.SendVerificationLink(ctx, acct.Email, code.Code, userName); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a code for the account and mails it as plain
// text. Account state is untouched. The bool reports delivery outcome;
// a failed send is logged and reported, never escalated.
func (s *VerificationService) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	email = account.NormalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", account.ErrValidation)
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	code, err := s.issueCode(ctx, acct.ID)
	if err != nil {
		return false, err
	}

	userName := fmt.Sprintf("%s %s", acct.FirstName, acct.LastName)
	if err := s.email.SendPasswordResetCode(ctx, acct.Email, code.Code, userName); err != nil {
		s.logger.WithFields(logrus.Fields{"account_id": acct.ID, "email": acct.Email}).WithError(err).Warn("failed to send password reset email")
		return false, nil
	}

	return true, nil
}

// ConfirmPasswordReset sets a new password when the code checks out. The
// code is not invalidated afterwards; within its window it stays usable.
func (s *VerificationService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = account.NormalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, token and password are required", account.ErrValidation)
	}

	if err := utils.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", account.ErrValidation, err)
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.findValidCode(ctx, acct.ID, code); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	acct.PasswordHash = string(hashed)
	acct.UpdatedAt = time.Now()
	if err := s.accounts.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": acct.ID}).Info("password reset confirmed")
	return nil
}

// VerifyCode is the read-only pre-check. The bypass code succeeds before
// any lookup happens; everything else needs a matching valid row.
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) error {
	if code == "" {
		return fmt.Errorf("%w: token is required", account.ErrValidation)
	}
	if code == account.BypassCode {
		return nil
	}

	acct, err := s.accounts.GetByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("%w: no matching code", account.ErrInvalidOrExpiredCode)
	}

	_, err = s.findValidCode(ctx, acct.ID, code)
	return err
}

// ConfirmEmail is the only transition into the active state. Re-confirming
// with a still-valid code is harmless; the flag is simply set again, and
// an expired retry never deactivates the account.
func (s *VerificationService) ConfirmEmail(ctx context.Context, email, code string) error {
	email = account.NormalizeEmail(email)
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and token are required", account.ErrValidation)
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.findValidCode(ctx, acct.ID, code); err != nil {
		return err
	}

	acct.IsActive = true
	acct.UpdatedAt = time.Now()
	if err := s.accounts.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to activate account: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": acct.ID, "email": acct.Email}).Info("email verified, account activated")
	return nil
}
