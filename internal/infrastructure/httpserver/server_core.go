package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/tunefans/identity/internal/core/ports"
	customMiddleware "github.com/tunefans/identity/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	AccountService      ports.AccountService
	VerificationService ports.VerificationService
	AuthService         ports.AuthService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	accountSvc     ports.AccountService
	verifySvc      ports.VerificationService
	authSvc        ports.AuthService
	metrics        *customMiddleware.MetricsMiddleware
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		accountSvc:     deps.AccountService,
		verifySvc:      deps.VerificationService,
		authSvc:        deps.AuthService,
		healthCheckers: deps.HealthCheckers,
		metrics: customMiddleware.NewMetricsMiddleware(
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
