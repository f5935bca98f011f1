// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func buildRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(recoverMW(s.log), requestIDMW(), loggingMW(s.log))

	r.Get("/healthz", healthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	}

	api := func(sr chi.Router) {
		sr.Use(defaultHeadersMW(s.cfg.Server.DefaultHeaders))
		if s.limiter != nil {
			sr.Use(rateLimitMW(s.limiter))
		}
		if s.authProv != nil {
			sr.Use(requireAuth(s.authProv))
		}

		sr.Get("/schemas", s.listSchemas)
		sr.Get("/schemas/{name}", s.exportSchema)

		body := requireJSON(s.cfg.Server.MaxBodyBytes)
		sr.With(body).Post("/schemas/{name}/load", s.loadHandler(false))
		sr.With(body).Post("/schemas/{name}/validate", s.loadHandler(true))
	}

	base := strings.TrimRight(s.cfg.Server.BasePath, "/")
	if base == "" {
		r.Group(api)
	} else {
		r.Route(base, api)
	}

	return r
}
