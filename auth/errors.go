package auth

import (
	"errors"
	"fmt"

	"github.com/upb/api-scaffold/internal/shared"
)

var (
	// ErrMissingToken is returned when the request carries no token
	ErrMissingToken = fmt.Errorf("%w: missing token", shared.ErrUnauthorized)

	// ErrInvalidToken is returned when the token cannot be parsed or its signature does not verify
	ErrInvalidToken = fmt.Errorf("%w: invalid token", shared.ErrUnauthorized)

	// ErrTokenExpired is returned when the token carries an exp claim in the past
	ErrTokenExpired = fmt.Errorf("%w: token expired", shared.ErrUnauthorized)

	// ErrInvalidCredentials is returned when the validator rejects the decoded payload
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", shared.ErrUnauthorized)

	// ErrNotAuthenticated is returned when a request context has no auth state
	ErrNotAuthenticated = errors.New("request is not authenticated")
)

// IsUnauthorized reports whether err should be answered with a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, shared.ErrUnauthorized)
}

// Message returns the client-facing message for an authentication failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Missing authentication"
	case errors.Is(err, ErrTokenExpired):
		return "Token expired"
	default:
		return "Invalid token"
	}
}
