package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/login", s.login)

	accounts := api.Group("/accounts")
	accounts.POST("", s.signup)
	accounts.GET("/forgot-password", s.requestPasswordReset)
	accounts.PATCH("/forgot-password", s.confirmPasswordReset)
	accounts.POST("/verify-token", s.verifyToken)
	accounts.GET("/verify-email", s.verifyEmail)
}
