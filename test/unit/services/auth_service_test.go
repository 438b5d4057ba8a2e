package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/tunefans/identity/configs"
	impl "github.com/tunefans/identity/internal/application/services"
	"github.com/tunefans/identity/internal/core/domain/account"
	tmocks "github.com/tunefans/identity/test/mocks"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "unit-test-secret", AccessTokenTTL: time.Hour}
}

func activeAccount(t *testing.T, password string) *account.Account {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &account.Account{
		ID:           uuid.New(),
		Email:        "fan@x.com",
		PasswordHash: string(hashed),
		Role:         account.RoleFan,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	acct := activeAccount(t, "Secret1!")
	repo := &tmocks.AccountRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*account.Account, error) { return acct, nil },
	}
	svc := impl.NewAuthService(repo, authTestConfig(), logrus.New())

	tokens, err := svc.Login(context.Background(), &account.LoginRequest{Email: "Fan@X.Com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, claims.AccountID)
	assert.Equal(t, account.RoleFan, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	acct := activeAccount(t, "Secret1!")
	repo := &tmocks.AccountRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*account.Account, error) { return acct, nil },
	}
	svc := impl.NewAuthService(repo, authTestConfig(), logrus.New())

	_, err := svc.Login(context.Background(), &account.LoginRequest{Email: "fan@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, account.ErrInvalidCredentials))
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.AccountRepositoryMock{}, authTestConfig(), logrus.New())

	_, err := svc.Login(context.Background(), &account.LoginRequest{Email: "ghost@x.com", Password: "x"})
	assert.True(t, errors.Is(err, account.ErrInvalidCredentials))
}

func TestLogin_NoPasswordSet(t *testing.T) {
	acct := &account.Account{ID: uuid.New(), Email: "fan@x.com", IsActive: true}
	repo := &tmocks.AccountRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*account.Account, error) { return acct, nil },
	}
	svc := impl.NewAuthService(repo, authTestConfig(), logrus.New())

	_, err := svc.Login(context.Background(), &account.LoginRequest{Email: "fan@x.com", Password: ""})
	assert.True(t, errors.Is(err, account.ErrInvalidCredentials))
}

func TestLogin_UnverifiedAccountRejected(t *testing.T) {
	acct := activeAccount(t, "Secret1!")
	acct.IsActive = false
	repo := &tmocks.AccountRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*account.Account, error) { return acct, nil },
	}
	svc := impl.NewAuthService(repo, authTestConfig(), logrus.New())

	_, err := svc.Login(context.Background(), &account.LoginRequest{Email: "fan@x.com", Password: "Secret1!"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, account.ErrInvalidCredentials), "a correct password on an unverified account is a distinct failure")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	acct := activeAccount(t, "Secret1!")
	repo := &tmocks.AccountRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*account.Account, error) { return acct, nil },
	}
	issuer := impl.NewAuthService(repo, authTestConfig(), logrus.New())
	tokens, err := issuer.Login(context.Background(), &account.LoginRequest{Email: "fan@x.com", Password: "Secret1!"})
	require.NoError(t, err)

	verifier := impl.NewAuthService(repo, &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour}, logrus.New())
	_, err = verifier.ValidateToken(context.Background(), tokens.AccessToken)
	assert.Error(t, err)
}
