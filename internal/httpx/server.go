// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sort"

	"github.com/Bl4cky99/schemer/internal/auth"
	"github.com/Bl4cky99/schemer/internal/config"
	"github.com/Bl4cky99/schemer/internal/render"
	"github.com/Bl4cky99/schemer/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	authProv auth.Provider
	handler  http.Handler
	httpSrv  *http.Server
	schemas  map[string]*schema.Schema
	names    []string
	renderer *render.Renderer
	limiter  *rate.Limiter
	metrics  *metrics
	registry *prometheus.Registry
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithAuth protects the schema routes. A nil provider leaves them open.
func WithAuth(p auth.Provider) Option {
	return func(s *Server) {
		s.authProv = p
	}
}

func WithRenderer(r *render.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithLimiter overrides the limiter built from server.rateLimitRps.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithRegistry sets the registry /metrics exposes when server.metrics is on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{cfg: cfg, log: slog.New(slog.NewTextHandler(os.Stdout, nil))}
	for _, o := range opts {
		o(s)
	}

	schemas, err := cfg.BuildSchemas()
	if err != nil {
		return nil, err
	}
	s.schemas = schemas
	s.names = make([]string, 0, len(schemas))
	for name := range schemas {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	if s.renderer == nil {
		s.renderer = render.New()
	}

	if s.limiter == nil && cfg.Server.RateLimitRPS > 0 {
		burst := int(cfg.Server.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), burst)
	}

	if cfg.Server.Metrics {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		s.metrics = newMetrics(s.registry)
	}

	s.handler = buildRouter(s)
	s.httpSrv = &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ListenAndServe() error {
	s.log.Info("schemer running", "addr", s.cfg.Server.Addr, "basePath", s.cfg.Server.BasePath, "schemas", len(s.names))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
