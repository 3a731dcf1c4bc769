package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/hashrace/internal/logging"
	"github.com/agbru/hashrace/internal/metrics"
)

func newTestServer() *Server {
	return New("127.0.0.1:0", metrics.NewSuiteMetrics().Registry(), logging.Nop())
}

func TestMetrics_WritePrometheus(t *testing.T) {
	suite := metrics.NewSuiteMetrics()
	m := NewMetrics(suite.Registry())
	suite.RunStarted(4)
	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()
	m.CountRequest("/metrics", http.MethodGet)

	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body := rec.Body.String()

	for _, want := range []string{
		"hashrace_http_active_requests 1",
		`hashrace_http_requests_total{method="GET",path="/metrics"} 1`,
		"hashrace_active_workers 4",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServer_metricsMiddleware(t *testing.T) {
	s := newTestServer()

	nextCalled := false
	handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	if !nextCalled {
		t.Error("next handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestServer_handleMetrics(t *testing.T) {
	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodPut, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			s := newTestServer()
			rec := httptest.NewRecorder()
			s.handleMetrics(rec, httptest.NewRequest(tt.method, "/metrics", http.NoBody))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && !strings.Contains(rec.Body.String(), "hashrace_") {
				t.Error("response should contain hashrace metrics")
			}
		})
	}
}

func TestServer_handleHealth(t *testing.T) {
	s := newTestServer()
	s.SetPhase("Parallel hashing with 8 threads:")

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Phase != "Parallel hashing with 8 threads:" {
		t.Errorf("health = %+v", got)
	}

	rec = httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodDelete, "/healthz", http.NoBody))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rec.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := newTestServer()
	addr, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"phase":"idle"`) {
		t.Errorf("GET /healthz = %d %s", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing on live server")
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestServer_StartInvalidAddr(t *testing.T) {
	s := New("256.0.0.1:bad", metrics.NewSuiteMetrics().Registry(), logging.Nop())
	if _, err := s.Start(); err == nil {
		t.Error("expected a listen error")
	}
}
