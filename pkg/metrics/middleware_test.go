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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMiddleware(t *testing.T) {
	Enable()

	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()
	ActiveConnections.Reset()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	req := httptest.NewRequest("POST", "/api/v1/validate", nil)
	rec := httptest.NewRecorder()

	HTTPMiddleware(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "200")); got != 1 {
		t.Errorf("Expected 1 request recorded, got %v", got)
	}
	if got := testutil.ToFloat64(ActiveConnections.WithLabelValues(ProtocolHTTP)); got != 0 {
		t.Errorf("Expected no active connections after request, got %v", got)
	}
}

func TestHTTPMiddlewareStatusCodes(t *testing.T) {
	Enable()

	testCases := []struct {
		name       string
		statusCode int
		label      string
	}{
		{"200 OK", http.StatusOK, "200"},
		{"400 Bad Request", http.StatusBadRequest, "400"},
		{"404 Not Found", http.StatusNotFound, "404"},
		{"500 Internal Server Error", http.StatusInternalServerError, "500"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			HTTPRequestsTotal.Reset()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest("POST", "/api/v1/validate", nil)
			rec := httptest.NewRecorder()

			HTTPMiddleware(handler).ServeHTTP(rec, req)

			if rec.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, rec.Code)
			}
			if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", tc.label)); got != 1 {
				t.Errorf("Expected 1 request with status %s, got %v", tc.label, got)
			}
		})
	}
}

func TestHTTPMiddlewareWhenDisabled(t *testing.T) {
	Disable()
	defer Enable()

	HTTPRequestsTotal.Reset()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	HTTPMiddleware(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if count := testutil.CollectAndCount(HTTPRequestsTotal); count != 0 {
		t.Errorf("Expected no requests recorded when disabled, got %d", count)
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapper := &responseWriter{
		ResponseWriter: rec,
		statusCode:     http.StatusOK,
	}

	wrapper.WriteHeader(http.StatusCreated)
	if wrapper.statusCode != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, wrapper.statusCode)
	}

	// Only the first WriteHeader is captured
	wrapper.WriteHeader(http.StatusBadRequest)
	if wrapper.statusCode != http.StatusCreated {
		t.Error("Status code should not change after first WriteHeader call")
	}

	data := []byte("test data")
	n, err := wrapper.Write(data)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if n != len(data) {
		t.Errorf("Expected %d bytes written, got %d", len(data), n)
	}
}

func TestResponseWriterDefaultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapper := &responseWriter{
		ResponseWriter: rec,
		statusCode:     http.StatusOK,
	}

	_, _ = wrapper.Write([]byte("test"))

	if wrapper.statusCode != http.StatusOK {
		t.Errorf("Expected default status code %d, got %d", http.StatusOK, wrapper.statusCode)
	}
}

func BenchmarkHTTPMiddleware(b *testing.B) {
	Enable()
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/health", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
