package services

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/domain/profile"
	"github.com/tunefans/identity/internal/core/ports"
	"github.com/tunefans/identity/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	repo         ports.AccountRepository
	verification ports.VerificationService
	logger       *logrus.Logger
}

func NewAccountService(repo ports.AccountRepository, verification ports.VerificationService, logger *logrus.Logger) ports.AccountService {
	return &AccountService{
		repo:         repo,
		verification: verification,
		logger:       logger,
	}
}

// Signup provisions an identity together with its role profile. The two
// rows are written in one transaction; the follow-up verification mail is
// best-effort and never undoes a committed signup.
func (s *AccountService) Signup(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error) {
	email := account.NormalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", account.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email %q", account.ErrValidation, email)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: role must be fan or artist", account.ErrValidation)
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %q is already taken", account.ErrDuplicateAccount, email)
	}

	// Password is optional; an account without one simply has no usable
	// credential until a reset sets it.
	var passwordHash string
	if req.Password != "" {
		if err := utils.ValidatePassword(req.Password); err != nil {
			return nil, fmt.Errorf("%w: %s", account.ErrValidation, err)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hashed)
	}

	newAccount := &account.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	prof := profile.ForAccount(newAccount, req.StageName, req.Arts)

	if err := s.repo.CreateWithProfile(ctx, newAccount, prof); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	notified := true
	if err := s.verification.SendVerificationLink(ctx, newAccount); err != nil {
		notified = false
		s.logger.WithFields(logrus.Fields{
			"account_id": newAccount.ID,
			"email":      newAccount.Email,
		}).WithError(err).Warn("failed to send verification email")
	}

	return &ports.SignupResult{Account: newAccount, Notified: notified}, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.repo.GetByEmail(ctx, account.NormalizeEmail(email))
}
