// Package server provides the HTTP API for Rumfinder.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/navigate"
	"github.com/kortnav/rumfinder/internal/storage"
)

// Server is the HTTP server for the Rumfinder API.
type Server struct {
	nav    *navigate.Navigator
	store  storage.Store
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server. store may be nil when the index cache is
// disabled; the status endpoint then omits cache statistics.
func NewServer(nav *navigate.Navigator, store storage.Store, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		nav:    nav,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/floors", s.handleFloors)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
