// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Bl4cky99/schemer/internal/records"
	"github.com/Bl4cky99/schemer/pkg/schema"
	"github.com/go-chi/chi/v5"
)

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) listSchemas(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"schemas": s.names})
}

func (s *Server) exportSchema(w http.ResponseWriter, r *http.Request) {
	sc, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	s.writeJSON(w, http.StatusOK, sc.JSONSchema())
}

// loadHandler serves load and, with validateOnly, validate. Both answer
// 422 with the full report when any check fails.
func (s *Server) loadHandler(validateOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		sc, err := s.lookup(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		many, opts, err := loadOptionsFrom(r.URL.Query())
		if err != nil {
			s.metrics.observe(name, outcomeError, 0)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		in, err := records.Decode(r.Body, records.FormatJSON)
		if err != nil {
			s.metrics.observe(name, outcomeError, 0)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		batch := in.Batch
		if many != nil {
			batch = *many
		}
		if batch {
			opts = append(opts, schema.Many())
		}

		out, err := sc.Decode(in.Value, opts...)
		if err != nil {
			var ve *schema.ValidationError
			if !errors.As(err, &ve) {
				s.metrics.observe(name, outcomeError, 0)
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			s.metrics.observe(name, outcomeInvalid, 0)
			pr, _ := principalFrom(r.Context())
			s.log.Debug("load rejected",
				"schema", name, "violations", len(ve.Violations),
				"principal", pr.Name, "rid", requestIDFrom(r.Context()))
			s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": ve})
			return
		}

		s.metrics.observe(name, outcomeOK, countRecords(out))

		if validateOnly {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) lookup(name string) (*schema.Schema, error) {
	sc, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return sc, nil
}

func countRecords(out any) int {
	if recs, ok := out.([]schema.Record); ok {
		return len(recs)
	}
	return 1
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := s.renderer.JSON(v)
	if err != nil {
		s.log.Error("encode response", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
