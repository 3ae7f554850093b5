package auth

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a request body the stub validator reads.
const maxLoggedBody = 64 << 10

// Verdict is a validator's decision about a decoded payload.
// A nil Credentials means the decoded payload itself becomes the credentials.
type Verdict struct {
	IsValid     bool
	Credentials jwt.MapClaims
}

// Validator decides whether a verified token payload is acceptable.
type Validator interface {
	Validate(ctx context.Context, decoded jwt.MapClaims, r *http.Request) (Verdict, error)
}

// ValidatorFunc adapts a function to Validator
type ValidatorFunc func(ctx context.Context, decoded jwt.MapClaims, r *http.Request) (Verdict, error)

// Validate calls f
func (f ValidatorFunc) Validate(ctx context.Context, decoded jwt.MapClaims, r *http.Request) (Verdict, error) {
	return f(ctx, decoded, r)
}

// AcceptAll is a stub Validator: it logs the decoded payload and the request
// body and accepts everything. It never returns an error.
type AcceptAll struct {
	logger *zap.Logger
}

// NewAcceptAll creates the stub validator
func NewAcceptAll(logger *zap.Logger) *AcceptAll {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcceptAll{logger: logger}
}

// Validate implements Validator
func (v *AcceptAll) Validate(ctx context.Context, decoded jwt.MapClaims, r *http.Request) (Verdict, error) {
	v.logger.Info("validating decoded token",
		zap.Any("decoded", map[string]interface{}(decoded)),
		zap.ByteString("payload", peekBody(r)))

	// TODO: look the user up once a user store exists and reject unknown ids
	return Verdict{IsValid: true}, nil
}

// peekBody reads up to maxLoggedBody bytes and puts them back so the handler
// still sees the full body.
func peekBody(r *http.Request) []byte {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	if err != nil {
		return nil
	}
	return head
}
