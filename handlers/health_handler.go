package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/api-scaffold/reply"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Check is a named readiness probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	checks []Check
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(logger *zap.Logger, checks ...Check) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		checks: checks,
		logger: logger,
		now:    time.Now,
	}
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(r *http.Request) reply.Result {
	return reply.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz
// Readiness check - runs every registered probe
func (h *HealthHandler) HandleReadiness(r *http.Request) reply.Result {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	allHealthy := true

	for _, c := range h.checks {
		if err := c.Probe(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				zap.String("check", c.Name),
				zap.Error(err))
			checks[c.Name] = "unhealthy"
			allHealthy = false
			continue
		}
		checks[c.Name] = "healthy"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	return reply.JSON(httpStatus, HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
