package handlers

import (
	"net/http"

	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/server"
	"go.uber.org/zap"
)

// LogErrorResponses returns a pre-response hook that logs error results.
// Results are returned unchanged.
func LogErrorResponses(logger observability.Logger) server.Hook {
	if logger == nil {
		logger = observability.NewContextLogger(nil)
	}

	return func(r *http.Request, res reply.Result) reply.Result {
		detail, isErr := res.Err()
		if !isErr {
			return res
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", detail.Status),
			zap.String("error", http.StatusText(detail.Status)),
			zap.String("message", detail.Message),
		}
		if detail.Cause != nil {
			fields = append(fields, zap.NamedError("cause", detail.Cause))
		}
		logger.Warn(r.Context(), "response is an error", fields...)

		return res
	}
}
