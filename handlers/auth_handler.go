package handlers

import (
	"fmt"
	"net/http"

	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/reply"
	"go.uber.org/zap"
)

// TokenIssuer signs login tokens.
type TokenIssuer interface {
	Sign(claims auth.Claims) (string, error)
}

// AuthHandler handles the login route
type AuthHandler struct {
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		issuer: issuer,
		logger: logger,
	}
}

// HandleLogin handles GET /login
// Returns a signed token for the fixed test user as the plain response body.
func (h *AuthHandler) HandleLogin(r *http.Request) reply.Result {
	token, err := h.issuer.Sign(auth.Claims{ID: 1, Name: "test-user"})
	if err != nil {
		return reply.Fail(fmt.Errorf("issuing login token: %w", err))
	}

	h.logger.Debug("login token issued", zap.Int("user_id", 1))
	return reply.Text(token)
}
