// Package auth provides the JWT authentication strategy and token issuing.
//
// This package implements:
//   - Strategy: a named auth provider that extracts a token from the
//     request, verifies its HMAC signature against an allow-list of
//     algorithms and hands the decoded payload to a Validator
//   - AcceptAll: the stub Validator, which logs what it sees and accepts
//     every payload
//   - Issuer: signs Claims with the same shared secret
//   - State: the per-request authentication result stored in the context
//
// Strategies are registered with the server by name; a route either uses
// the server default, names a strategy, or opts out entirely.
package auth
