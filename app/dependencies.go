package app

import (
	"context"
	"fmt"
	"io"

	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/docs"
	"github.com/upb/api-scaffold/handlers"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/templates"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config    *config.Config
	Logger    *zap.Logger
	CtxLogger *observability.ContextLogger

	// Auth
	Strategy *auth.Strategy
	Issuer   *auth.Issuer

	// Views and documentation
	Templates *templates.Renderer
	Docs      *docs.Generator

	// Handlers
	AuthHandler   *handlers.AuthHandler
	TestHandler   *handlers.TestHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		CtxLogger: observability.NewContextLogger(logger),
	}

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initDocs(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initAuth builds the JWT strategy and the issuer for the login route.
// Both share the configured secret and algorithm.
func (d *Dependencies) initAuth(cfg *config.Config) error {
	strategy, err := auth.NewStrategy(auth.StrategyConfig{
		Name:       cfg.Auth.Strategy,
		SecretKey:  cfg.Auth.SecretKey,
		Algorithms: []string{cfg.Auth.Algorithm},
		Validator:  auth.NewAcceptAll(d.Logger),
	}, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}

	issuer, err := auth.NewIssuer(cfg.Auth.SecretKey, cfg.Auth.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create issuer: %w", err)
	}

	d.Strategy = strategy
	d.Issuer = issuer
	d.Logger.Info("auth strategy initialized",
		zap.String("strategy", cfg.Auth.Strategy),
		zap.String("algorithm", cfg.Auth.Algorithm))
	return nil
}

func (d *Dependencies) initDocs(cfg *config.Config) {
	d.Templates = templates.New(docs.Templates())
	d.Docs = docs.NewGenerator(docs.DefaultOptions(cfg.Docs), d.Logger)
}

func (d *Dependencies) initHandlers() {
	d.AuthHandler = handlers.NewAuthHandler(d.Issuer, d.Logger)
	d.TestHandler = handlers.NewTestHandler(d.CtxLogger)
	d.HealthHandler = handlers.NewHealthHandler(d.Logger, d.ReadinessChecks()...)
}

// ReadinessChecks returns the probes behind the readiness endpoint.
func (d *Dependencies) ReadinessChecks() []handlers.Check {
	return []handlers.Check{
		{
			Name: "auth",
			Probe: func(context.Context) error {
				_, err := d.Issuer.Sign(auth.Claims{})
				return err
			},
		},
		{
			Name: "templates",
			Probe: func(context.Context) error {
				return d.Templates.Render(io.Discard, docs.DocumentationView, map[string]string{})
			},
		},
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	_ = d.Logger.Sync()

	return nil
}
