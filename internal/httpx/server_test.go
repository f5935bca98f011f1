// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bl4cky99/schemer/internal/auth"
	"github.com/Bl4cky99/schemer/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func mustLoad(t *testing.T, path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("could not load test config %s: %v", path, err)
	}

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, file string, opts ...Option) *Server {
	t.Helper()
	cfg := mustLoad(t, filepath.Join("testdata", file))
	s, err := New(context.Background(), cfg, append([]Option{WithLogger(discardLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

type stubProvider struct {
	principal auth.Principal
	ok        bool
	err       error
}

func (s stubProvider) Authenticate(*http.Request) (auth.Principal, bool, error) {
	return s.principal, s.ok, s.err
}

func TestServer(t *testing.T) {
	s := newTestServer(t, "ok.yaml")
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "", nil)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("wrong healthz: %d %q", rec.Code, rec.Body.String())
	}
	if rid := rec.Header().Get("X-Request-ID"); rid == "" {
		t.Fatal("missing request id header")
	}
}

func TestNewWithOptions(t *testing.T) {
	cfg := mustLoad(t, filepath.Join("testdata", "ok.yaml"))
	cfg.Server.Addr = ":0"

	logger := discardLogger()
	prov := stubProvider{principal: auth.Principal{Name: "tester"}, ok: true}
	lim := rate.NewLimiter(1, 1)
	reg := prometheus.NewRegistry()

	ctx := context.Background()
	srv, err := New(ctx, cfg, WithLogger(logger), WithAuth(prov), WithLimiter(lim), WithRegistry(reg))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if srv.log != logger {
		t.Fatalf("logger option not applied")
	}
	if srv.authProv != prov {
		t.Fatalf("auth option not applied")
	}
	if srv.limiter != lim || srv.registry != reg || srv.metrics == nil {
		t.Fatalf("limiter or registry option not applied")
	}
	if srv.renderer == nil || srv.handler == nil || srv.httpSrv == nil {
		t.Fatalf("server not initialised")
	}
	if srv.httpSrv.Addr != ":0" {
		t.Fatalf("http server addr mismatch: %s", srv.httpSrv.Addr)
	}
	if got := srv.httpSrv.BaseContext(nil); got != ctx {
		t.Fatalf("base context mismatch")
	}
	if len(srv.names) != 2 || srv.names[0] != "UserSchema" || srv.names[1] != "VetSchema" {
		t.Fatalf("schema names not sorted: %v", srv.names)
	}
}

func TestNewBuildsLimiterFromConfig(t *testing.T) {
	cfg := mustLoad(t, filepath.Join("testdata", "ok.yaml"))
	cfg.Server.RateLimitRPS = 0.5

	srv, err := New(context.Background(), cfg, WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if srv.limiter == nil || srv.limiter.Burst() != 1 {
		t.Fatalf("expected limiter with burst 1, got %+v", srv.limiter)
	}
}

func TestNewRejectsBadSchemas(t *testing.T) {
	cfg := &config.Config{Schemas: []config.SchemaDef{{
		Name:   "S",
		Fields: []config.FieldDef{{Name: "a", Type: "float"}},
	}}}
	if _, err := New(context.Background(), cfg, WithLogger(discardLogger())); err == nil {
		t.Fatalf("expected schema build error")
	}
}

func TestListAndExportSchemas(t *testing.T) {
	h := newTestServer(t, "ok.yaml").Handler()

	rec := do(t, h, http.MethodGet, "/api/schemas", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	if got := rec.Header().Get("X-Service"); got != "schemer" {
		t.Fatalf("default header missing, got %q", got)
	}
	names := decodeBody(t, rec)["schemas"].([]any)
	if len(names) != 2 || names[0] != "UserSchema" {
		t.Fatalf("unexpected names: %v", names)
	}

	rec = do(t, h, http.MethodGet, "/api/schemas/VetSchema", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/schema+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	doc := decodeBody(t, rec)
	if doc["title"] != "VetSchema" || doc["additionalProperties"] != false {
		t.Fatalf("unexpected export: %v", doc)
	}

	rec = do(t, h, http.MethodGet, "/api/schemas/Nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLoadEndpoint(t *testing.T) {
	h := newTestServer(t, "ok.yaml").Handler()

	tests := []struct {
		name   string
		target string
		body   string
		ct     string
		status int
		check  func(t *testing.T, body map[string]any, raw string)
	}{
		{
			name:   "single record",
			target: "/api/schemas/UserSchema/load",
			body:   `{"name":"Mick","email":"mick@stones.com","age":"80"}`,
			status: http.StatusOK,
			check: func(t *testing.T, body map[string]any, _ string) {
				if body["name"] != "Mick" || body["age"] != float64(80) {
					t.Fatalf("unexpected output: %v", body)
				}
			},
		},
		{
			name:   "numeric name is not a string",
			target: "/api/schemas/UserSchema/load",
			body:   `{"name":42,"email":1}`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any, _ string) {
				errs := body["errors"].(map[string]any)
				if msg := errs["name"].([]any)[0]; msg != "Not a valid string." {
					t.Fatalf("unexpected message %v", msg)
				}
				if msg := errs["email"].([]any)[0]; msg != "Not a valid string." {
					t.Fatalf("unexpected message %v", msg)
				}
			},
		},
		{
			name:   "batch report by index",
			target: "/api/schemas/UserSchema/load?many=true",
			body:   `[{"name":"Mick","email":"mick@stones.com"},{"name":"Keith","email":"invalid@email.com"},{"email":"invalid"}]`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any, _ string) {
				errs := body["errors"].(map[string]any)
				second := errs["2"].(map[string]any)
				if len(errs) != 1 || len(second) != 2 {
					t.Fatalf("unexpected report: %v", errs)
				}
				if msg := second["email"].([]any)[0]; msg != "Not a valid email address." {
					t.Fatalf("unexpected message %v", msg)
				}
				if msg := second["name"].([]any)[0]; msg != "Missing data for required field." {
					t.Fatalf("unexpected message %v", msg)
				}
			},
		},
		{
			name:   "batch inferred from array body",
			target: "/api/schemas/UserSchema/load",
			body:   `[{"name":"Mick"},{"name":"Keith"}]`,
			status: http.StatusOK,
			check: func(t *testing.T, _ map[string]any, raw string) {
				if !strings.HasPrefix(strings.TrimSpace(raw), "[") {
					t.Fatalf("expected array output, got %s", raw)
				}
			},
		},
		{
			name:   "array with many=false is invalid input",
			target: "/api/schemas/UserSchema/load?many=false",
			body:   `[{"name":"Mick"}]`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any, _ string) {
				errs := body["errors"].(map[string]any)
				if _, ok := errs["_schema"]; !ok {
					t.Fatalf("expected _schema entry: %v", errs)
				}
			},
		},
		{
			name:   "partial skips required",
			target: "/api/schemas/UserSchema/load?partial=name",
			body:   `{"email":"mick@stones.com"}`,
			status: http.StatusOK,
		},
		{
			name:   "unknown raise from definition",
			target: "/api/schemas/VetSchema/load",
			body:   `{"name":"Dr. Wags","color":"red"}`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any, _ string) {
				if _, ok := body["errors"].(map[string]any)["color"]; !ok {
					t.Fatalf("expected unknown field report: %v", body)
				}
			},
		},
		{
			name:   "unknown override by query",
			target: "/api/schemas/VetSchema/load?unknown=include",
			body:   `{"name":"Dr. Wags","color":"red","website":null}`,
			status: http.StatusOK,
			check: func(t *testing.T, body map[string]any, _ string) {
				if body["color"] != "red" {
					t.Fatalf("unknown key not included: %v", body)
				}
				if v, ok := body["website"]; !ok || v != nil {
					t.Fatalf("nullable website not kept as null: %v", body)
				}
			},
		},
		{
			name:   "bad option",
			target: "/api/schemas/UserSchema/load?many=maybe",
			body:   `{}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "bad json",
			target: "/api/schemas/UserSchema/load",
			body:   `{"name":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "too large",
			target: "/api/schemas/UserSchema/load",
			body:   `{"name":"` + strings.Repeat("x", 600) + `"}`,
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "not json",
			target: "/api/schemas/UserSchema/load",
			body:   `name=Mick`,
			ct:     "application/x-www-form-urlencoded",
			status: http.StatusUnsupportedMediaType,
		},
		{
			name:   "unknown schema",
			target: "/api/schemas/Nope/load",
			body:   `{}`,
			status: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var hdr map[string]string
			if tc.ct != "" {
				hdr = map[string]string{"Content-Type": tc.ct}
			}
			rec := do(t, h, http.MethodPost, tc.target, tc.body, hdr)
			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d (body %s)", rec.Code, tc.status, rec.Body.String())
			}
			if tc.check != nil {
				var body map[string]any
				_ = json.Unmarshal(rec.Body.Bytes(), &body)
				tc.check(t, body, rec.Body.String())
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestServer(t, "ok.yaml").Handler()

	rec := do(t, h, http.MethodPost, "/api/schemas/UserSchema/validate", `{"name":"Mick"}`, nil)
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected 204 without body, got %d %q", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/schemas/UserSchema/validate", `{"age":true}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	errs := decodeBody(t, rec)["errors"].(map[string]any)
	if len(errs) != 2 {
		t.Fatalf("expected name and age errors, got %v", errs)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, "ok.yaml").Handler()

	do(t, h, http.MethodPost, "/api/schemas/UserSchema/load", `[{"name":"a"},{"name":"b"}]`, nil)
	do(t, h, http.MethodPost, "/api/schemas/UserSchema/load", `{}`, nil)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`schemer_loads_total{outcome="ok",schema="UserSchema"} 1`,
		`schemer_loads_total{outcome="invalid",schema="UserSchema"} 1`,
		`schemer_records_total{schema="UserSchema"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	h := newTestServer(t, "auth.yaml").Handler()
	if rec := do(t, h, http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", rec.Code)
	}
}

func TestAuthProtectsSchemaRoutes(t *testing.T) {
	cfg := mustLoad(t, filepath.Join("testdata", "auth.yaml"))
	prov, err := auth.FromConfig(cfg.Auth)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	s, err := New(context.Background(), cfg, WithLogger(discardLogger()), WithAuth(prov))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h := s.Handler()

	if rec := do(t, h, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz should stay open, got %d", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/schemas/UserSchema/load", `{"name":"x"}`, nil)
	if rec.Code != http.StatusUnauthorized || rec.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected 401 with challenge, got %d %q", rec.Code, rec.Header().Get("WWW-Authenticate"))
	}

	rec = do(t, h, http.MethodPost, "/schemas/UserSchema/load", `{"name":"x"}`, map[string]string{"Authorization": "Bearer devtoken123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	s := newTestServer(t, "ok.yaml", WithLimiter(rate.NewLimiter(rate.Limit(0.001), 1)))
	h := s.Handler()

	if rec := do(t, h, http.MethodGet, "/api/schemas", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/api/schemas", "", nil)
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz should not be limited, got %d", rec.Code)
	}
}
