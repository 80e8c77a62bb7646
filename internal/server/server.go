package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/autorouter/internal/analytics"
	"github.com/nulzo/autorouter/internal/config"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/internal/server/middleware"
	"github.com/nulzo/autorouter/internal/server/validator"
	"github.com/nulzo/autorouter/internal/store"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP layer fronts. Repo, Analytics and
// Ingestor are optional.
type Dependencies struct {
	Autorouter ports.Autorouter
	Catalog    ports.ModelCatalog
	Repo       store.Repository
	Analytics  analytics.Service
	Ingestor   analytics.Ingestor
	Version    string
}

type Server struct {
	router      *gin.Engine
	config      *config.Config
	logger      *zap.Logger
	deps        Dependencies
	validator   *validator.Validator
	rateLimiter *middleware.RateLimiter
	httpServer  *http.Server
}

func New(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	engine.Use(middleware.Logger(logger))

	s := &Server{
		router:      engine,
		config:      cfg,
		logger:      logger,
		deps:        deps,
		validator:   validator.New(),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger),
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.rateLimiter.Cleanup(ctx, time.Minute, 10*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
