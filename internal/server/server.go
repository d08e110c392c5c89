// Package server owns the HTTP server lifecycle: startup, signal
// handling and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/bootstrap"
	"github.com/quicktech/studentportal/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server bundles everything a running instance needs.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	logger zerolog.Logger
}

// NewServer loads configuration, connects the database and builds the
// full dependency graph.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	// Uploaded avatars are served as plain static files.
	router.Static("/uploads/avatars", cfg.Storage.AvatarPath)

	return &Server{
		cfg:    cfg,
		router: router,
		dbPool: dbPool,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a
// server error occurs.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:    ":" + s.cfg.Server.Port,
		Handler: s.router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", s.cfg.Server.Port).Msg("Starting HTTP server")
		serverErrors <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
			if closeErr := httpServer.Close(); closeErr != nil {
				s.logger.Error().Err(closeErr).Msg("Forced close failed")
			}
		}

		s.dbPool.Close()
		s.logger.Info().Msg("Server stopped")
	}

	return nil
}
