package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/ports"
	identity_http "github.com/tunefans/identity/internal/infrastructure/httpserver"
	"github.com/tunefans/identity/test/mocks"
)

func newTestServer(deps identity_http.ServerDeps) *identity_http.Server {
	cfg := &identity_http.ServerConfig{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}
	return identity_http.NewServer(cfg, logrus.New(), deps)
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]any
	if strings.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestSignupEndpoint_Created(t *testing.T) {
	accountMock := &mocks.AccountServiceMock{
		SignupFn: func(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error) {
			return &ports.SignupResult{
				Account:  &account.Account{ID: uuid.New(), Email: req.Email, Role: req.Role},
				Notified: true,
			}, nil
		},
	}
	srv := newTestServer(identity_http.ServerDeps{AccountService: accountMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts",
		map[string]any{"email": "fan@x.com", "password": "Secret1!", "role": "fan"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["notified"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fan@x.com", data["email"])
	assert.NotContains(t, data, "password_hash")
}

func TestSignupEndpoint_DuplicateIsBadRequest(t *testing.T) {
	accountMock := &mocks.AccountServiceMock{
		SignupFn: func(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error) {
			return nil, fmt.Errorf("%w: email %q is already taken", account.ErrDuplicateAccount, req.Email)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{AccountService: accountMock})

	rec, _ := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts",
		map[string]any{"email": "taken@x.com", "role": "fan"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupEndpoint_NotifierFailureStillCreated(t *testing.T) {
	accountMock := &mocks.AccountServiceMock{
		SignupFn: func(ctx context.Context, req *account.SignupRequest) (*ports.SignupResult, error) {
			return &ports.SignupResult{
				Account:  &account.Account{ID: uuid.New(), Email: req.Email, Role: req.Role},
				Notified: false,
			}, nil
		},
	}
	srv := newTestServer(identity_http.ServerDeps{AccountService: accountMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts",
		map[string]any{"email": "fan@x.com", "role": "fan"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, false, body["notified"])
}

func TestForgotPasswordEndpoint_SendsCode(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		RequestPasswordResetFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodGet, "/api/v1/accounts/forgot-password?email=fan@x.com", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email sent!", body["status"])
}

func TestForgotPasswordEndpoint_UnknownAccountIsStillOK(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		RequestPasswordResetFn: func(ctx context.Context, email string) (bool, error) {
			return false, fmt.Errorf("%w: email %s", account.ErrAccountNotFound, email)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodGet, "/api/v1/accounts/forgot-password?email=ghost@x.com", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Account not found", body["detail"])
	assert.Equal(t, true, body["error"])
}

func TestForgotPasswordEndpoint_MissingEmail(t *testing.T) {
	srv := newTestServer(identity_http.ServerDeps{VerificationService: &mocks.VerificationServiceMock{}})

	rec, _ := doJSON(t, srv.Echo(), http.MethodGet, "/api/v1/accounts/forgot-password", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmPasswordResetEndpoint_Success(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		ConfirmPasswordResetFn: func(ctx context.Context, email, code, newPassword string) error { return nil },
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPatch, "/api/v1/accounts/forgot-password",
		map[string]any{"email": "fan@x.com", "token": "1234", "password": "NewPass1!"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", body["status"])
}

func TestConfirmPasswordResetEndpoint_ExpiredCode(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		ConfirmPasswordResetFn: func(ctx context.Context, email, code, newPassword string) error {
			return fmt.Errorf("%w: code issued too long ago", account.ErrInvalidOrExpiredCode)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPatch, "/api/v1/accounts/forgot-password",
		map[string]any{"email": "fan@x.com", "token": "1234", "password": "NewPass1!"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP expired or invalid", body["detail"])
}

func TestConfirmPasswordResetEndpoint_WhitespaceEmailIsBadRequest(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		ConfirmPasswordResetFn: func(ctx context.Context, email, code, newPassword string) error {
			return fmt.Errorf("%w: email, token and password are required", account.ErrValidation)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, _ := doJSON(t, srv.Echo(), http.MethodPatch, "/api/v1/accounts/forgot-password",
		map[string]any{"email": "   ", "token": "1234", "password": "NewPass1!"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyTokenEndpoint_ValidCode(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		VerifyCodeFn: func(ctx context.Context, email, code string) error { return nil },
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts/verify-token",
		map[string]any{"email": "fan@x.com", "token": "1234"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", body["status"])
}

func TestVerifyTokenEndpoint_InvalidCode(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		VerifyCodeFn: func(ctx context.Context, email, code string) error {
			return fmt.Errorf("%w: no matching code", account.ErrInvalidOrExpiredCode)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts/verify-token",
		map[string]any{"email": "fan@x.com", "token": "9999"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OTP expired or invalid", body["detail"])
}

func TestVerifyTokenEndpoint_BypassCode(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		VerifyCodeFn: func(ctx context.Context, email, code string) error {
			if code == account.BypassCode {
				return nil
			}
			return fmt.Errorf("%w: no matching code", account.ErrInvalidOrExpiredCode)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/accounts/verify-token",
		map[string]any{"email": "anyone@x.com", "token": account.BypassCode})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", body["status"])
}

func TestVerifyEmailEndpoint_SuccessPage(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		ConfirmEmailFn: func(ctx context.Context, email, code string) error { return nil },
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, _ := doJSON(t, srv.Echo(), http.MethodGet, "/api/v1/accounts/verify-email?email=fan@x.com&token=1234", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Email Verified Successfully")
}

func TestVerifyEmailEndpoint_FailurePageIsStillOK(t *testing.T) {
	verifyMock := &mocks.VerificationServiceMock{
		ConfirmEmailFn: func(ctx context.Context, email, code string) error {
			return fmt.Errorf("%w: code issued too long ago", account.ErrInvalidOrExpiredCode)
		},
	}
	srv := newTestServer(identity_http.ServerDeps{VerificationService: verifyMock})

	rec, _ := doJSON(t, srv.Echo(), http.MethodGet, "/api/v1/accounts/verify-email?email=fan@x.com&token=9999", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Verification Failed")
}

func TestLoginEndpoint(t *testing.T) {
	authMock := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, req *account.LoginRequest) (*ports.AuthTokens, error) {
			if req.Password != "Secret1!" {
				return nil, account.ErrInvalidCredentials
			}
			return &ports.AuthTokens{AccessToken: "access-x", ExpiresIn: 3600}, nil
		},
	}
	srv := newTestServer(identity_http.ServerDeps{AuthService: authMock})

	rec, body := doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": "fan@x.com", "password": "Secret1!"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "access-x", body["access_token"])

	rec, _ = doJSON(t, srv.Echo(), http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": "fan@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(identity_http.ServerDeps{})

	rec, body := doJSON(t, srv.Echo(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "identity", body["service"])
}
