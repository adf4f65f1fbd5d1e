// internal/server/server.go

// Package server exposes the activity registry over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"activities-service/internal/common/errors"
	"activities-service/internal/common/logger"
	"activities-service/internal/common/observability"
	"activities-service/internal/notify"
	"activities-service/internal/registry"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the signup API over a stdlib mux.
type Server struct {
	store      registry.Store
	notifier   notify.Notifier
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
	httpServer *http.Server
	port       int

	staticRedirect string
}

// Config holds server configuration.
type Config struct {
	Store    registry.Store
	Notifier notify.Notifier
	Logger   logger.Logger
	Obs      *observability.Observability
	Port     int

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	StaticRedirect string
}

// New creates the API server. Store and Logger are required; the notifier
// defaults to a no-op and Obs may be nil.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Noop{}
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.StaticRedirect == "" {
		cfg.StaticRedirect = "/static/index.html"
	}

	srv := &Server{
		store:          cfg.Store,
		notifier:       cfg.Notifier,
		logger:         cfg.Logger,
		errHandler:     errors.NewErrorHandler(cfg.Logger),
		obs:            cfg.Obs,
		port:           cfg.Port,
		staticRedirect: cfg.StaticRedirect,
	}

	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

// Routes builds the mux; exposed so tests can drive the handler stack
// through httptest without binding a port.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.instrument("root", s.handleRoot))
	mux.HandleFunc("GET /activities", s.instrument("list_activities", s.handleListActivities))
	mux.HandleFunc("POST /activities/{activity}/signup", s.instrument("signup", s.handleSignup))
	mux.HandleFunc("DELETE /activities/{activity}/unregister", s.instrument("unregister", s.handleUnregister))
	mux.HandleFunc("GET /health", s.instrument("health", s.handleHealth))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Profiling endpoints live on the same mux; this server is internal to
	// the school network.
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	return s.withRequestID(mux)
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting activities API server", map[string]interface{}{"port": s.port})

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping activities API server", nil)
	return s.httpServer.Shutdown(ctx)
}
