package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const stateKey contextKey = "auth_state"

// State is the authentication result attached to a request.
type State struct {
	IsAuthenticated bool
	Strategy        string
	Credentials     jwt.MapClaims
	Token           string
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The raw token is not logged.
func (s *State) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("is_authenticated", s.IsAuthenticated)
	enc.AddString("strategy", s.Strategy)
	return enc.AddReflected("credentials", s.Credentials)
}

// WithState adds the auth state to the context
func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

// StateFromContext retrieves the auth state from context
func StateFromContext(ctx context.Context) (*State, bool) {
	state, ok := ctx.Value(stateKey).(*State)
	return state, ok && state != nil
}
