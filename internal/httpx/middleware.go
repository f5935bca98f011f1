// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Bl4cky99/schemer/internal/auth"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func recoverMW(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic", "err", rec)
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ctxKeyReqID struct{}

// requestIDMW keeps a caller supplied X-Request-ID and mints one otherwise.
func requestIDMW() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if id == "" {
				id = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), ctxKeyReqID{}, id)
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyReqID{}).(string)
	return id
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (lw *loggingResponseWriter) WriteHeader(code int) {
	lw.status = code
	lw.ResponseWriter.WriteHeader(code)
}

func loggingMW(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(lrw, r)
			log.Info("http",
				"method", r.Method, "path", r.URL.Path,
				"status", lrw.status, "dur_ms", time.Since(start).Milliseconds(),
				"rid", requestIDFrom(r.Context()))
		})
	}
}

type ctxKeyPrincipal struct{}

func principalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal{}).(auth.Principal)
	return p, ok
}

func requireAuth(p auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}

		challenge := ""
		if c, ok := p.(auth.Challenger); ok {
			challenge = c.Challenge()
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pr, ok, err := p.Authenticate(r)
			if err != nil || !ok {
				if challenge != "" {
					w.Header().Set("WWW-Authenticate", challenge)
				}
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal{}, pr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rateLimitMW(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func defaultHeadersMW(headers map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(headers) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range headers {
				if w.Header().Get(k) == "" {
					w.Header().Set(k, v)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireJSON rejects non-JSON bodies with 415 and caps the body size.
// Reading past the cap fails with *http.MaxBytesError.
func requireJSON(maxBody int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || !isJSONMediaType(got) {
				writeError(w, http.StatusUnsupportedMediaType, "content-type must be application/json")
				return
			}

			if maxBody > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isJSONMediaType(mt string) bool {
	mt = strings.ToLower(mt)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
