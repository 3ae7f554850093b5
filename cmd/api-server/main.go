package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/upb/api-scaffold/app"
	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/routes"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "api-server: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires dependencies and serves until ctx is done.
func run(ctx context.Context) error {
	cfg, err := config.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", zap.Error(err))
		return err
	}
	defer func() {
		if err := deps.Close(context.Background()); err != nil {
			logger.Error("failed to close dependencies", zap.Error(err))
		}
	}()

	srv, err := routes.SetupRoutes(deps)
	if err != nil {
		logger.Error("failed to set up routes", zap.Error(err))
		return err
	}

	logger.Info("starting server",
		zap.String("uri", cfg.Server.URI()),
		zap.String("environment", cfg.Environment))

	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Observability)
}
