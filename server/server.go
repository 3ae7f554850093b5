package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/internal/shared"
	"github.com/upb/api-scaffold/reply"
	"go.uber.org/zap"
)

// Renderer renders a named template.
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// Server is the HTTP server and its registered capabilities.
type Server struct {
	cfg    *config.Config
	router *chi.Mux
	logger *zap.Logger
	log    *observability.ContextLogger

	mu          sync.RWMutex
	started     bool
	providers   map[string]auth.Provider
	defaultAuth string
	renderer    Renderer
	hooks       []Hook
	routes      []RouteInfo
	keys        map[string]struct{}
	httpServer  *http.Server
	addr        string
}

// New creates a server. Middlewares wrap every request, including routing
// misses, and must all be given here.
func New(cfg *config.Config, logger *zap.Logger, middlewares ...func(http.Handler) http.Handler) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		logger:    logger,
		log:       observability.NewContextLogger(logger),
		providers: make(map[string]auth.Provider),
		keys:      make(map[string]struct{}),
	}

	s.router.Use(middlewares...)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, reply.NotFound(fmt.Errorf("%w: %s %s", shared.ErrNotFound, r.Method, r.URL.Path)))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, reply.MethodNotAllowed(fmt.Errorf("%w: %s %s", shared.ErrMethodNotAllowed, r.Method, r.URL.Path)))
	})

	return s
}

// RegisterStaticFiles serves fsys under prefix, e.g. "/swaggerui/".
func (s *Server) RegisterStaticFiles(prefix string, fsys fs.FS) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("%w: static prefix %q must start with /", ErrInvalidRoute, prefix)
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	fileServer := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	s.router.Handle(prefix+"*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasFile(fsys, strings.TrimPrefix(r.URL.Path, prefix)) {
			s.respond(w, r, reply.NotFound(fmt.Errorf("%w: %s %s", shared.ErrNotFound, r.Method, r.URL.Path)))
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
	s.logger.Info("static files registered", zap.String("prefix", prefix))
	return nil
}

// hasFile reports whether name resolves to a file in fsys, or to a directory
// holding an index.html.
func hasFile(fsys fs.FS, name string) bool {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		name = "."
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	if info.IsDir() {
		info, err = fs.Stat(fsys, path.Join(name, "index.html"))
		return err == nil && !info.IsDir()
	}
	return true
}

// RegisterTemplates sets the renderer used by View.
func (s *Server) RegisterTemplates(r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}
	s.renderer = r
	s.logger.Info("template renderer registered")
	return nil
}

// RegisterAuthProvider registers a named auth strategy.
func (s *Server) RegisterAuthProvider(name string, p auth.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}
	if name == "" || p == nil {
		return errors.New("auth provider needs a name and an implementation")
	}
	if _, exists := s.providers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateStrategy, name)
	}
	s.providers[name] = p
	s.logger.Info("auth strategy registered", zap.String("strategy", name))
	return nil
}

// SetDefaultAuth makes name the strategy for routes registered afterwards
// that do not choose one themselves.
func (s *Server) SetDefaultAuth(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}
	if _, ok := s.providers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	s.defaultAuth = name
	return nil
}

// RegisterDocGenerator installs the routes a documentation generator serves.
func (s *Server) RegisterDocGenerator(g DocGenerator) error {
	if g == nil {
		return errors.New("doc generator is nil")
	}
	if err := s.Route(g.Routes(s)...); err != nil {
		return fmt.Errorf("registering doc generator: %w", err)
	}
	return nil
}

// OnPreResponse appends a hook run for every result, in registration order.
func (s *Server) OnPreResponse(h Hook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}
	if h != nil {
		s.hooks = append(s.hooks, h)
	}
	return nil
}

// Route installs route definitions. Nothing is installed if any of them is
// invalid.
func (s *Server) Route(routes ...Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrStarted
	}

	type resolved struct {
		route    Route
		strategy string
		provider auth.Provider
		key      string
	}
	batch := make([]resolved, 0, len(routes))
	seen := make(map[string]struct{}, len(routes))

	for _, rt := range routes {
		if rt.Method == "" || rt.Path == "" || rt.Handler == nil {
			return fmt.Errorf("%w: %s %s", ErrInvalidRoute, rt.Method, rt.Path)
		}
		rt.Method = strings.ToUpper(rt.Method)

		key := rt.Method + " " + rt.Path
		if _, dup := s.keys[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
		}
		seen[key] = struct{}{}

		strategy := ""
		switch rt.Auth.mode {
		case authDefault:
			strategy = s.defaultAuth
		case authNamed:
			strategy = rt.Auth.strategy
		}

		var provider auth.Provider
		if strategy != "" {
			p, ok := s.providers[strategy]
			if !ok {
				return fmt.Errorf("%w: %s (route %s)", ErrUnknownStrategy, strategy, key)
			}
			provider = p
		}

		batch = append(batch, resolved{route: rt, strategy: strategy, provider: provider, key: key})
	}

	for _, b := range batch {
		s.router.Method(b.route.Method, b.route.Path, s.lifecycle(b.route, b.strategy, b.provider))
		s.keys[b.key] = struct{}{}
		s.routes = append(s.routes, RouteInfo{
			Method:      b.route.Method,
			Path:        b.route.Path,
			Strategy:    b.strategy,
			Params:      b.route.Params,
			Description: b.route.Description,
			Notes:       b.route.Notes,
			Tags:        b.route.Tags,
		})
		s.logger.Debug("route registered",
			zap.String("method", b.route.Method),
			zap.String("path", b.route.Path),
			zap.String("strategy", b.strategy))
	}

	return nil
}

// Routes returns a snapshot of the installed routes in registration order.
func (s *Server) Routes() []RouteInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RouteInfo, len(s.routes))
	copy(out, s.routes)
	return out
}

// View renders the named template as an HTML result.
func (s *Server) View(name string, data interface{}) reply.Result {
	s.mu.RLock()
	renderer := s.renderer
	s.mu.RUnlock()

	if renderer == nil {
		return reply.Fail(ErrNoRenderer)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		return reply.Fail(fmt.Errorf("rendering %s: %w", name, err))
	}
	return reply.HTML(buf.Bytes())
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listening address once Start is serving.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrStarted
	}
	s.started = true

	ln, err := net.Listen("tcp", s.cfg.Server.Address())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Address(), err)
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}
	s.addr = ln.Addr().String()
	httpServer := s.httpServer
	s.mu.Unlock()

	s.logger.Info("server started", zap.String("uri", "http://"+ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	httpServer := s.httpServer
	s.mu.RUnlock()

	if httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down server")
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
