package shared

import "errors"

// Sentinel causes for the results the request lifecycle produces itself.
// Check them with errors.Is on ErrorDetail.Cause.
var (
	// ErrNotFound marks a request no route or static file matched.
	ErrNotFound = errors.New("not found")
	// ErrMethodNotAllowed marks a known path requested with the wrong method.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrValidation marks path params that failed their rules.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a request the auth strategy rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrHandlerPanic marks a handler panic recovered by the lifecycle.
	ErrHandlerPanic = errors.New("handler panicked")
)
