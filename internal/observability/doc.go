// Package observability provides structured logging for the API scaffold.
//
// This package implements:
//   - zap logger construction from configuration (json or console output)
//   - A context-aware Logger that stamps every entry with the request ID
//
// Every request passes through the access log, and error-shaped responses
// are logged by the pre-response hook through this package.
package observability
