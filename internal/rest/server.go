// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/correlation"
	"github.com/jeremyhahn/go-webcrypto/pkg/health"
	"github.com/jeremyhahn/go-webcrypto/pkg/metrics"
	"github.com/jeremyhahn/go-webcrypto/pkg/ratelimit"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// Server represents the REST API server.
type Server struct {
	server    *http.Server
	handlers  *HandlerContext
	tlsConfig *tls.Config
	limiter   *ratelimit.Limiter
	logger    logger.Logger
	metrics   string
}

// Config holds the REST server configuration.
type Config struct {
	// Address is the host:port to listen on (default: ":8443")
	Address string

	// Registry runs validation requests. Required.
	Registry *webcrypto.Registry

	// Version is reported by /api/v1/algorithms
	Version string

	// TLSConfig enables HTTPS when set
	TLSConfig *tls.Config

	// RateLimiter throttles /api/v1 per client IP (optional)
	RateLimiter *ratelimit.Limiter

	// HealthChecker backs the /health routes (optional)
	HealthChecker *health.Checker

	// MetricsPath mounts the Prometheus handler; empty disables it
	MetricsPath string

	// Logger is the logging adapter (optional)
	Logger logger.Logger

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxRequestBytes int64
}

// NewServer creates a new REST API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if cfg.Registry == nil {
		return nil, ErrRegistryRequired
	}

	if cfg.Address == "" {
		cfg.Address = ":8443"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.MaxRequestBytes == 0 {
		cfg.MaxRequestBytes = 1 << 20
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewSlogAdapter(&logger.SlogConfig{Level: logger.LevelInfo})
	}
	checker := cfg.HealthChecker
	if checker == nil {
		checker = health.NewChecker()
	}

	server := &Server{
		handlers: &HandlerContext{
			Registry:        cfg.Registry,
			HealthChecker:   checker,
			Version:         cfg.Version,
			MaxRequestBytes: cfg.MaxRequestBytes,
		},
		tlsConfig: cfg.TLSConfig,
		limiter:   cfg.RateLimiter,
		logger:    log,
		metrics:   cfg.MetricsPath,
	}

	server.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      server.setupRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		TLSConfig:    cfg.TLSConfig,
		ConnState:    trackConnections,
	}
	return server, nil
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.RecoveryMiddleware())
	r.Use(correlation.Middleware)
	r.Use(s.LoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)

	r.Get("/health", s.handlers.LivenessHandler)
	r.Head("/health", s.handlers.LivenessHandler)
	r.Get("/health/live", s.handlers.LivenessHandler)
	r.Get("/health/ready", s.handlers.ReadinessHandler)
	r.Get("/health/startup", s.handlers.StartupHandler)

	if s.metrics != "" {
		r.Handle(s.metrics, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimit.Middleware(s.limiter))
		}
		r.Post("/validate", s.handlers.ValidateHandler)
		r.Get("/algorithms", s.handlers.AlgorithmsHandler)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Stop is called. The health checker is marked started
// once the listener is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.handlers.HealthChecker.MarkStarted()

	if s.tlsConfig != nil {
		s.logger.Info("Starting HTTPS server", logger.String("address", ln.Addr().String()))
		err := s.server.ServeTLS(ln, "", "")
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTPS server: %w", err)
		}
		return nil
	}

	s.logger.Info("Starting HTTP server", logger.String("address", ln.Addr().String()))
	err := s.server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the REST API server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.handlers.HealthChecker.MarkNotStarted()
	if s.limiter != nil {
		s.limiter.Stop()
	}

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shutdown server", logger.Err(err))
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

func trackConnections(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		metrics.IncrementActiveConnections(metrics.ProtocolHTTP)
	case http.StateClosed, http.StateHijacked:
		metrics.DecrementActiveConnections(metrics.ProtocolHTTP)
	}
}
