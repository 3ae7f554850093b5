package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/internal/shared"
	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/utils"
	"go.uber.org/zap"
)

// lifecycle builds the handler for one route: authenticate, validate path
// params, run the handler, then pass the result through every hook.
func (s *Server) lifecycle(rt Route, strategy string, provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, s.run(r, rt, strategy, provider))
	}
}

func (s *Server) run(r *http.Request, rt Route, strategy string, provider auth.Provider) (res reply.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.log.Error(r.Context(), "handler panicked",
				zap.String("method", rt.Method),
				zap.String("path", rt.Path),
				zap.Any("panic", rec))
			res = reply.Fail(fmt.Errorf("%w: %v", shared.ErrHandlerPanic, rec))
		}
	}()

	if provider != nil {
		state, err := provider.Authenticate(r)
		if err != nil {
			if auth.IsUnauthorized(err) {
				s.log.Debug(r.Context(), "authentication failed",
					zap.String("strategy", strategy),
					zap.Error(err))
				return reply.Unauthorized(auth.Message(err), err)
			}
			return reply.Fail(fmt.Errorf("authenticating with %s: %w", strategy, err))
		}
		if state == nil {
			return reply.Fail(fmt.Errorf("strategy %s returned no auth state", strategy))
		}
		if state.Strategy == "" {
			state.Strategy = strategy
		}
		r = r.WithContext(auth.WithState(r.Context(), state))
	}

	if len(rt.Params) > 0 {
		params := make(map[string]string, len(rt.Params))
		for _, p := range rt.Params {
			params[p.Name] = chi.URLParam(r, p.Name)
		}
		if err := utils.ValidateParams(params, rt.Params); err != nil {
			var verr *utils.ValidationError
			if errors.As(err, &verr) {
				return reply.BadRequest(verr.Message, verr.Details(), fmt.Errorf("%w: %v", shared.ErrValidation, err))
			}
			return reply.Fail(err)
		}
	}

	return rt.Handler(r)
}

// respond runs the pre-response hooks and writes the final result.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, res reply.Result) {
	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()

	for _, h := range hooks {
		res = h(r, res)
	}

	if detail, ok := res.Err(); ok && detail.Status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", detail.Status),
			zap.Error(detail.Cause))
	}

	if err := res.Write(w); err != nil {
		s.log.Warn(r.Context(), "failed to write response", zap.Error(err))
	}
}
