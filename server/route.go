package server

import (
	"net/http"

	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/utils"
)

// HandlerFunc produces the result for a request.
type HandlerFunc func(r *http.Request) reply.Result

// Hook post-processes a result before it is written.
type Hook func(r *http.Request, res reply.Result) reply.Result

type authMode int

const (
	authDefault authMode = iota
	authNone
	authNamed
)

// Auth selects how a route authenticates. The zero value uses the server
// default strategy.
type Auth struct {
	mode     authMode
	strategy string
}

// NoAuth opts a route out of authentication.
var NoAuth = Auth{mode: authNone}

// WithStrategy requires the named strategy.
func WithStrategy(name string) Auth {
	return Auth{mode: authNamed, strategy: name}
}

// Route is a single route definition.
type Route struct {
	Method  string
	Path    string
	Handler HandlerFunc
	Auth    Auth
	Params  []utils.ParamRule

	// Documentation metadata
	Description string
	Notes       string
	Tags        []string
}

// RouteInfo is the read-only view of an installed route.
type RouteInfo struct {
	Method      string
	Path        string
	Strategy    string // "" when the route is public
	Params      []utils.ParamRule
	Description string
	Notes       string
	Tags        []string
}

// HasTag reports whether the route carries tag.
func (ri RouteInfo) HasTag(tag string) bool {
	for _, t := range ri.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Host is what documentation generators get to see of the server.
type Host interface {
	Routes() []RouteInfo
	View(name string, data interface{}) reply.Result
}

// DocGenerator contributes the routes that serve API documentation.
type DocGenerator interface {
	Routes(host Host) []Route
}
