package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bennorichters/notes-rag/internal/contextutil"
)

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"valid key", "secret", http.StatusOK},
		{"wrong key", "nope", http.StatusForbidden},
		{"missing key", "", http.StatusForbidden},
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := APIKey("secret")(inner)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(apiKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.expected {
				t.Errorf("status = %d, want %d", rec.Code, tt.expected)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextutil.RequestIDFromContext(r.Context())
	})
	handler := RequestID(inner)

	t.Run("generated when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if seen == "" {
			t.Error("no request id in context")
		}
		if rec.Header().Get("X-Request-Id") != seen {
			t.Errorf("response header %q != context id %q", rec.Header().Get("X-Request-Id"), seen)
		}
	})

	t.Run("client id preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "client-chosen")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if seen != "client-chosen" {
			t.Errorf("request id = %q, want client-chosen", seen)
		}
	})
}

func TestLoggerMiddleware(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if contextutil.LoggerFromContext(r.Context()) == nil {
			t.Error("no logger in context")
		}
	})
	handler := LoggerMiddleware(inner)

	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Error("inner handler not called")
	}
}
