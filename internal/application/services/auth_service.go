package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	config "github.com/tunefans/identity/configs"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	accounts  ports.AccountRepository
	jwtConfig *config.JWTConfig
	logger    *logrus.Logger
}

func NewAuthService(accounts ports.AccountRepository, jwtConfig *config.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		accounts:  accounts,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Login checks credentials and issues an access token. Only active
// (email-verified) accounts may log in.
func (s *AuthService) Login(ctx context.Context, req *account.LoginRequest) (*ports.AuthTokens, error) {
	acct, err := s.accounts.GetByEmail(ctx, account.NormalizeEmail(req.Email))
	if err != nil {
		return nil, account.ErrInvalidCredentials
	}

	// An account provisioned without a password has no usable credential.
	if acct.PasswordHash == "" {
		return nil, account.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	if !acct.IsActive {
		return nil, fmt.Errorf("account email is not verified")
	}

	now := time.Now()
	claims := &ports.Claims{
		AccountID: acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": acct.ID, "role": acct.Role}).Info("account logged in")

	return &ports.AuthTokens{
		AccessToken: signed,
		ExpiresIn:   int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ports.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*ports.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
