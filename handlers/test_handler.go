package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/reply"
	"go.uber.org/zap"
)

// errTestRoute is what GET /test/{guid} fails with on every request.
var errTestRoute = errors.New("test error")

// TestHandler handles the authenticated test route
type TestHandler struct {
	logger observability.Logger
}

// NewTestHandler creates a new TestHandler
func NewTestHandler(logger observability.Logger) *TestHandler {
	if logger == nil {
		logger = observability.NewContextLogger(nil)
	}
	return &TestHandler{logger: logger}
}

// HandleTest handles GET /test/{guid}
// It builds and logs the user context and the auth state, then fails.
func (h *TestHandler) HandleTest(r *http.Request) reply.Result {
	ctx := r.Context()

	userCtx, err := BuildUserContext(ctx, h.logger)
	if err != nil {
		return reply.Fail(fmt.Errorf("building user context: %w", err))
	}
	h.logger.Info(ctx, "context", zap.Any("user_context", userCtx))

	if state, ok := auth.StateFromContext(ctx); ok {
		h.logger.Info(ctx, "auth", zap.Object("auth", state))
	}

	return reply.Fail(errTestRoute)
}
