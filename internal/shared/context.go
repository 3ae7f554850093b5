package shared

import "context"

// Context keys for request-scoped data. Keep types unexported to avoid collisions.
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request-id"
)

// WithRequestID returns a copy of ctx carrying the request correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID returns the correlation id stored in ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
