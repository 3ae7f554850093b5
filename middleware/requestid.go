package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/api-scaffold/internal/shared"
)

// RequestIDHeader carries the request correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID stores a correlation id in the request context and echoes it on
// the response. An incoming X-Request-ID is kept; otherwise a UUID is minted.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := shared.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
