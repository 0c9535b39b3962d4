package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mcoot/numberguess/internal/api"
	"github.com/mcoot/numberguess/internal/config"
	"github.com/mcoot/numberguess/internal/factory"
	"github.com/mcoot/numberguess/internal/services/auth"
	redisstorage "github.com/mcoot/numberguess/internal/storage/redis"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		AuthConfig: auth.Config{
			SessionDuration: cfg.SessionDuration,
			DefaultSettings: cfg.DefaultSettings(),
		},
		LeaderboardSize: cfg.LeaderboardSize,
		Logger:          logger,
		StorageType:     cfg.StorageType,
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			logger.Error("failed to create data directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
		factoryCfg.SQLitePath = cfg.SQLitePath
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(app.Router(), serverConfig, logger)
	// Ending event streams lets Shutdown drain
	server.OnShutdown(app.Hub.Close)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, app.AuthService, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	<-server.Ready()
	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageType),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func sweepSessions(ctx context.Context, authService *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := authService.CleanExpiredSessions(); n > 0 {
				logger.Info("expired sessions removed", slog.Int("count", n))
			}
		}
	}
}
