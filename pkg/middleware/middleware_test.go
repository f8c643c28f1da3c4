package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/triage/pkg/middleware"
)

func appendMarker(marker string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(marker))
			next.ServeHTTP(w, r)
		})
	}
}

func TestStackOrder(t *testing.T) {
	s := middleware.New()
	s.Use(appendMarker("a"))
	s.Use(appendMarker("b"))

	handler := s.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("h"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Body.String(); got != "abh" {
		t.Errorf("execution order = %s, want abh", got)
	}
}

func TestLogger(t *testing.T) {
	t.Run("logs request method uri and status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/triage", nil))

		out := buf.String()
		if !strings.Contains(out, "method=POST") {
			t.Errorf("log = %q, want method", out)
		}
		if !strings.Contains(out, "uri=/triage") {
			t.Errorf("log = %q, want uri", out)
		}
		if !strings.Contains(out, "status=404") {
			t.Errorf("log = %q, want response status", out)
		}
	})

	t.Run("records implicit ok status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if !strings.Contains(buf.String(), "status=200") {
			t.Errorf("log = %q, want status 200", buf.String())
		}
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("disabled passes through", func(t *testing.T) {
		cfg := &middleware.CORSConfig{Enabled: false}
		handler := middleware.CORS(cfg)(next)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("disabled CORS should not set headers")
		}
		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d, next handler should run", rec.Code)
		}
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		cfg := &middleware.CORSConfig{
			Enabled:        true,
			Origins:        []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         3600,
		}
		handler := middleware.CORS(cfg)(next)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("allow-origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
			t.Errorf("allow-methods = %q", got)
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		cfg := &middleware.CORSConfig{
			Enabled: true,
			Origins: []string{"http://localhost:3000"},
		}
		handler := middleware.CORS(cfg)(next)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("unlisted origin should not receive CORS headers")
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		cfg := &middleware.CORSConfig{
			Enabled: true,
			Origins: []string{"http://localhost:3000"},
		}
		handler := middleware.CORS(cfg)(next)

		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 for preflight", rec.Code)
		}
	})
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		cfg := &middleware.CORSConfig{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}

		if len(cfg.AllowedMethods) == 0 {
			t.Error("expected default allowed methods")
		}
		if cfg.MaxAge != 3600 {
			t.Errorf("max age = %d, want 3600", cfg.MaxAge)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_CORS_ENABLED", "true")
		t.Setenv("TEST_CORS_ORIGINS", "http://a.example.com, http://b.example.com")

		cfg := &middleware.CORSConfig{}
		env := &middleware.CORSEnv{
			Enabled: "TEST_CORS_ENABLED",
			Origins: "TEST_CORS_ORIGINS",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}

		if !cfg.Enabled {
			t.Error("enabled should be overridden from env")
		}
		if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.example.com" {
			t.Errorf("origins = %v", cfg.Origins)
		}
	})
}
