package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"werkshift/internal/auth"
	"werkshift/internal/config"
	"werkshift/internal/handler"
	"werkshift/internal/metrics"
	"werkshift/internal/middleware"
	"werkshift/internal/repository"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	logger *zap.Logger
}

// Init connects to the database and builds the HTTP engine.
func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	logger.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))

	store := repository.NewStore(db)
	engine, err := NewRouter(cfg, store, store, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: engine,
		DB:     db,
		Config: cfg,
		logger: logger,
	}, nil
}

// NewRouter wires services and handlers over store and mounts every route.
func NewRouter(cfg *config.Config, store repository.Store, pinger handler.Pinger, logger *zap.Logger) (*gin.Engine, error) {
	policy, err := service.ParseBulkPolicy(cfg.BulkAttachPolicy)
	if err != nil {
		return nil, err
	}

	catalog := service.NewCatalogService(store, logger)
	attacher := service.NewAttachmentService(store, logger)
	handlers := handler.NewHandlers(handler.Services{
		Makers:      service.NewMakerService(store, logger),
		Shifts:      service.NewShiftService(store, catalog, attacher, policy, logger),
		Werkers:     service.NewWerkerService(store, catalog, attacher, policy, logger),
		Assignments: service.NewAssignmentService(store, logger),
		Queries:     service.NewQueryService(store, logger),
	})
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry())

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	r.GET("/healthz", handler.NewHealthHandler(pinger, healthTimeout, logger).Check)
	r.GET(cfg.MetricsPath, gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	if cfg.RateLimit.Enabled {
		limit, err := middleware.RateLimit(cfg.RateLimit.Rate, middleware.NewStore(cfg.RateLimit.Storage, cfg.RateLimit.RedisURL, logger), logger)
		if err != nil {
			return nil, err
		}
		api.Use(limit)
	}
	handlers.Register(api, tokens)

	logger.Info("router ready",
		zap.String("bulk_policy", string(policy)),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)
	return r, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	s.logger.Info("server exited properly")
	return nil
}
