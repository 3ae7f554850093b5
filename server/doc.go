// Package server composes the HTTP server out of explicit capabilities.
//
// Startup code calls, in order:
//
//	s := server.New(cfg, logger, middlewares...)
//	s.RegisterStaticFiles("/swaggerui/", assets)
//	s.RegisterTemplates(renderer)
//	s.RegisterAuthProvider("jwt", strategy)
//	s.RegisterDocGenerator(generator)
//	s.SetDefaultAuth("jwt")
//	s.Route(routes...)
//	s.OnPreResponse(hook)
//	s.Start(ctx)
//
// Every route runs the same lifecycle: authenticate (unless the route opts
// out), validate path parameters, run the handler, run the pre-response
// hooks, write the result. Routing misses (404/405) and handler panics are
// turned into error results and go through the hooks as well.
//
// Registration is closed once Start has been called; after that the route
// table and strategies are read-only.
package server
