package server

import (
	"github.com/nulzo/autorouter/internal/server/middleware"
	v1 "github.com/nulzo/autorouter/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	s.router.Use(middleware.Identity())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// Health Check (Public)
	healthHandler := v1.NewHealthHandler(s.deps.Version)
	s.router.GET("/health", healthHandler.Health)

	api := s.router.Group("/v1")
	api.Use(middleware.Auth(s.deps.Repo, s.config.Server.APIKeys, s.logger))
	api.Use(s.rateLimiter.Middleware())
	{
		autorouteHandler := v1.NewAutorouteHandler(s.deps.Autorouter, s.deps.Ingestor, s.validator)
		api.POST("/autoroute", autorouteHandler.Autoroute)

		modelsHandler := v1.NewModelHandler(s.deps.Catalog)
		api.GET("/models", modelsHandler.ListModels)
		api.POST("/models/refresh", modelsHandler.RefreshModels)

		if s.deps.Analytics != nil {
			analyticsHandler := v1.NewAnalyticsHandler(s.deps.Analytics)
			api.GET("/stats", analyticsHandler.GetStats)
		}
	}
}
