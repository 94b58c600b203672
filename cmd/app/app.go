package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/clubhub-dev/clubhub/internal/adapters/config"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/redis"
	"github.com/clubhub-dev/clubhub/internal/adapters/metrics"
	"github.com/clubhub-dev/clubhub/pkg/logger"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"gorm.io/gorm"
)

type App struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Logger   *types.Logger
	Settings config.Settings
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	return &App{
		DB:       cfg.Database,
		Redis:    cfg.Redis,
		Metrics:  metrics.New(),
		Logger:   appLogger,
		Settings: cfg.Settings,
	}, nil
}

// Start serves handler until ctx is cancelled, then shuts the server down
// gracefully and closes the backing connections.
func (a *App) Start(ctx context.Context, handler http.Handler) error {
	server := &http.Server{
		Addr:              a.Settings.HTTP.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Settings.HTTP.ShutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	a.close()
	return err
}

func (a *App) close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Errorf("Failed to close redis: %v", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
