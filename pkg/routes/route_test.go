package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/triage/pkg/routes"
)

func marker(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/triage",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: marker("run")},
			{Method: "POST", Pattern: "/batch", Handler: marker("batch")},
		},
		Children: []routes.Group{
			{
				Prefix: "/admin",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/status", Handler: marker("status")},
				},
			},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"group route", "POST", "/triage", "run"},
		{"sibling route", "POST", "/triage/batch", "batch"},
		{"child group route", "GET", "/triage/admin/status", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("method mismatch", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/triage", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}
