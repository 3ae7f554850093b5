package server

import "errors"

var (
	// ErrStarted is returned when registering after Start
	ErrStarted = errors.New("server already started")

	// ErrUnknownStrategy is returned when a route or default names an unregistered strategy
	ErrUnknownStrategy = errors.New("unknown auth strategy")

	// ErrDuplicateStrategy is returned when a strategy name is registered twice
	ErrDuplicateStrategy = errors.New("auth strategy already registered")

	// ErrDuplicateRoute is returned when method and path are already taken
	ErrDuplicateRoute = errors.New("route already registered")

	// ErrInvalidRoute is returned for routes missing a method, path or handler
	ErrInvalidRoute = errors.New("invalid route")

	// ErrNoRenderer is returned when a view is rendered without registered templates
	ErrNoRenderer = errors.New("no template renderer registered")
)
