// Package server implements the scenesmith HTTP API.
//
// The API exposes rendering and validation over REST plus simple named-scene
// storage:
//
//	POST   /v1/render         render a scene document (sdf or urdf)
//	POST   /v1/validate       run the structural validation pass
//	GET    /v1/scenes         list stored scene names
//	PUT    /v1/scenes/{name}  store a scene
//	GET    /v1/scenes/{name}  fetch a stored scene
//	DELETE /v1/scenes/{name}  delete a stored scene
//	GET    /healthz           liveness probe
//
// Rendered documents are cached by scene content hash, so re-rendering an
// unchanged scene is a cache hit regardless of which instance serves it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/scenesmith/scenesmith/pkg/cache"
	"github.com/scenesmith/scenesmith/pkg/store"
)

// cacheTTL bounds how long rendered documents stay cached.
const cacheTTL = 24 * time.Hour

// Server is the scenesmith HTTP API server.
type Server struct {
	router chi.Router
	logger *log.Logger
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default logs to stderr.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithStore sets the scene storage backend. The default is in-memory.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithCache sets the rendered-document cache. The default is no caching.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// New creates a server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		logger: log.Default(),
		store:  store.NewMemoryStore(),
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/validate", s.handleValidate)
		r.Get("/scenes", s.handleListScenes)
		r.Put("/scenes/{name}", s.handlePutScene)
		r.Get("/scenes/{name}", s.handleGetScene)
		r.Delete("/scenes/{name}", s.handleDeleteScene)
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
