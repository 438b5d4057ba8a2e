package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/domain/profile"
	"github.com/tunefans/identity/internal/core/ports"
)

// AccountRepositoryMock is a lightweight mock for AccountRepository
type AccountRepositoryMock struct {
	CreateWithProfileFn func(ctx context.Context, acct *account.Account, prof profile.Profile) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByEmailFn        func(ctx context.Context, email string) (*account.Account, error)
	UpdateFn            func(ctx context.Context, acct *account.Account) error
}

func (m *AccountRepositoryMock) CreateWithProfile(ctx context.Context, acct *account.Account, prof profile.Profile) error {
	if m.CreateWithProfileFn != nil {
		return m.CreateWithProfileFn(ctx, acct, prof)
	}
	return nil
}
func (m *AccountRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("%w: id %s", account.ErrAccountNotFound, id)
}
func (m *AccountRepositoryMock) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("%w: email %s", account.ErrAccountNotFound, email)
}
func (m *AccountRepositoryMock) Update(ctx context.Context, acct *account.Account) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, acct)
	}
	return nil
}

// CodeRepositoryMock is a lightweight mock for CodeRepository
type CodeRepositoryMock struct {
	CreateFn func(ctx context.Context, code *account.VerificationCode) error
	FindFn   func(ctx context.Context, accountID uuid.UUID, code string) (*account.VerificationCode, error)
}

func (m *CodeRepositoryMock) Create(ctx context.Context, code *account.VerificationCode) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, code)
	}
	return nil
}
func (m *CodeRepositoryMock) Find(ctx context.Context, accountID uuid.UUID, code string) (*account.VerificationCode, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, accountID, code)
	}
	return nil, fmt.Errorf("%w: no matching code", account.ErrInvalidOrExpiredCode)
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	SendVerificationLinkFn  func(ctx context.Context, email, code, userName string) error
	SendPasswordResetCodeFn func(ctx context.Context, email, code, userName string) error
}

func (m *EmailServiceMock) SendVerificationLink(ctx context.Context, email, code, userName string) error {
	if m.SendVerificationLinkFn != nil {
		return m.SendVerificationLinkFn(ctx, email, code, userName)
	}
	return nil
}
func (m *EmailServiceMock) SendPasswordResetCode(ctx context.Context, email, code, userName string) error {
	if m.SendPasswordResetCodeFn != nil {
		return m.SendPasswordResetCodeFn(ctx, email, code, userName)
	}
	return nil
}

// AccountServiceMock is a lightweight mock for AccountService
type AccountServiceMock struct {
	SignupFn            func(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error)
	GetAccountFn        func(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetAccountByEmailFn func(ctx context.Context, email string) (*account.Account, error)
}

func (m *AccountServiceMock) Signup(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error) {
	if m.SignupFn != nil {
		return m.SignupFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *AccountServiceMock) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if m.GetAccountFn != nil {
		return m.GetAccountFn(ctx, id)
	}
	return nil, fmt.Errorf("%w: id %s", account.ErrAccountNotFound, id)
}
func (m *AccountServiceMock) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	if m.GetAccountByEmailFn != nil {
		return m.GetAccountByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("%w: email %s", account.ErrAccountNotFound, email)
}

// VerificationServiceMock is a lightweight mock for VerificationService
type VerificationServiceMock struct {
	SendVerificationLinkFn func(ctx context.Context, acct *account.Account) error
	RequestPasswordResetFn func(ctx context.Context, email string) (bool, error)
	ConfirmPasswordResetFn func(ctx context.Context, email, code, newPassword string) error
	VerifyCodeFn           func(ctx context.Context, email, code string) error
	ConfirmEmailFn         func(ctx context.Context, email, code string) error
}

func (m *VerificationServiceMock) SendVerificationLink(ctx context.Context, acct *account.Account) error {
	if m.SendVerificationLinkFn != nil {
		return m.SendVerificationLinkFn(ctx, acct)
	}
	return nil
}
func (m *VerificationServiceMock) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	if m.RequestPasswordResetFn != nil {
		return m.RequestPasswordResetFn(ctx, email)
	}
	return true, nil
}
func (m *VerificationServiceMock) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	if m.ConfirmPasswordResetFn != nil {
		return m.ConfirmPasswordResetFn(ctx, email, code, newPassword)
	}
	return nil
}
func (m *VerificationServiceMock) VerifyCode(ctx context.Context, email, code string) error {
	if m.VerifyCodeFn != nil {
		return m.VerifyCodeFn(ctx, email, code)
	}
	return nil
}
func (m *VerificationServiceMock) ConfirmEmail(ctx context.Context, email, code string) error {
	if m.ConfirmEmailFn != nil {
		return m.ConfirmEmailFn(ctx, email, code)
	}
	return nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	LoginFn         func(ctx context.Context, req *account.LoginRequest) (*ports.AuthTokens, error)
	ValidateTokenFn func(ctx context.Context, token string) (*ports.Claims, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *account.LoginRequest) (*ports.AuthTokens, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, account.ErrInvalidCredentials
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*ports.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("invalid token")
}
