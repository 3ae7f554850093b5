package routes

import (
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/api-scaffold/app"
	"github.com/upb/api-scaffold/docs"
	"github.com/upb/api-scaffold/handlers"
	"github.com/upb/api-scaffold/middleware"
	"github.com/upb/api-scaffold/server"
	"github.com/upb/api-scaffold/utils"
)

// SetupRoutes builds the server: middleware, capabilities, then routes.
func SetupRoutes(deps *app.Dependencies) (*server.Server, error) {
	cfg := deps.Config

	srv := server.New(cfg, deps.Logger,
		// Core middleware
		middleware.RequestID,
		chimw.RealIP,
		middleware.AccessLog(deps.Logger),
		chimw.Recoverer,
		chimw.Timeout(cfg.Server.RequestTimeout),

		// CORS middleware
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           cfg.CORS.MaxAge,
		}),
	)

	// Capabilities
	if err := srv.RegisterStaticFiles(deps.Docs.Options().AssetsPath, docs.Assets()); err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	if err := srv.RegisterTemplates(deps.Templates); err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	if err := srv.RegisterAuthProvider(cfg.Auth.Strategy, deps.Strategy); err != nil {
		return nil, fmt.Errorf("auth provider: %w", err)
	}
	if err := srv.RegisterDocGenerator(deps.Docs); err != nil {
		return nil, fmt.Errorf("doc generator: %w", err)
	}
	if err := srv.SetDefaultAuth(cfg.Auth.Strategy); err != nil {
		return nil, fmt.Errorf("default auth: %w", err)
	}

	// Health check endpoints
	if err := srv.Route(
		server.Route{Method: http.MethodGet, Path: "/healthz", Auth: server.NoAuth, Handler: deps.HealthHandler.HandleHealth},
		server.Route{Method: http.MethodGet, Path: "/readyz", Auth: server.NoAuth, Handler: deps.HealthHandler.HandleReadiness},
	); err != nil {
		return nil, fmt.Errorf("health routes: %w", err)
	}

	// API routes
	if err := srv.Route(
		server.Route{
			Method:      http.MethodGet,
			Path:        "/login",
			Auth:        server.NoAuth,
			Handler:     deps.AuthHandler.HandleLogin,
			Description: "test route",
			Notes:       "test route",
			Tags:        []string{"api"},
		},
		server.Route{
			Method:      http.MethodGet,
			Path:        "/",
			Auth:        server.NoAuth,
			Handler:     handlers.HandleRoot,
			Description: "test route",
			Notes:       "test route",
			Tags:        []string{"api"},
		},
		server.Route{
			Method:  http.MethodGet,
			Path:    "/test/{guid}",
			Handler: deps.TestHandler.HandleTest,
			Params: []utils.ParamRule{
				{Name: "guid", Type: "number", Rules: "required,number", Description: "test guid"},
			},
			Description: "test route",
			Notes:       "test route 1337",
			Tags:        []string{"api"},
		},
	); err != nil {
		return nil, fmt.Errorf("api routes: %w", err)
	}

	if err := srv.OnPreResponse(handlers.LogErrorResponses(deps.CtxLogger)); err != nil {
		return nil, fmt.Errorf("pre-response hook: %w", err)
	}

	return srv, nil
}
