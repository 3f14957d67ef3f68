package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// Request Logging Middleware Tests
// =============================================================================

func newLoggedHandler(buf *bytes.Buffer, status int) http.Handler {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	mw := NewRequestLoggingMiddleware(logger, nil)
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
}

func TestRequestLoggingMiddleware_LogsBasicInfo(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("GET", "/about", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("User-Agent", "Mozilla/5.0 TestBrowser")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	for _, want := range []string{"GET", "/about", "200", "duration", "192.168.1.1", "TestBrowser"} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("log should contain %q, got: %s", want, logOutput)
		}
	}
}

func TestRequestLoggingMiddleware_LogsClientIPFromProxy(t *testing.T) {
	var buf bytes.Buffer
	trusted, err := ParseProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}
	mw := NewRequestLoggingMiddleware(slog.New(slog.NewTextHandler(&buf, nil)), NewClientIP(trusted))
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/contact", nil)
	req.RemoteAddr = "10.0.0.1:8080"
	req.Header.Set("X-Forwarded-For", "203.0.113.195, 10.0.0.1")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "203.0.113.195") {
		t.Errorf("log should contain client IP from X-Forwarded-For, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_LogsErrorStatusAtWarn(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusInternalServerError)

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/appointment", nil))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "500") {
		t.Errorf("log should contain 500 status, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "level=WARN") {
		t.Errorf("5xx should log at WARN level, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_RedactsPersonalQueryParams(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("GET", "/appointment?name=Asha+Rao&phone=9876543210&lang=kn", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	if strings.Contains(logOutput, "Asha") || strings.Contains(logOutput, "9876543210") {
		t.Errorf("log should NOT contain personal data, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "lang=kn") {
		t.Errorf("log should keep harmless params, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	wrapped := RequestID(newLoggedHandler(&buf, http.StatusOK))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected X-Request-ID response header")
	}
	if !strings.Contains(buf.String(), "request_id="+id) {
		t.Errorf("log should contain request id %s, got: %s", id, buf.String())
	}
}

func TestRequestLoggingMiddleware_PassesRequestThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewRequestLoggingMiddleware(logger, nil)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusSeeOther)
		_, _ = w.Write([]byte("response body"))
	})

	rec := httptest.NewRecorder()
	mw.Handler(handler).ServeHTTP(rec, httptest.NewRequest("POST", "/appointment", nil))

	if !handlerCalled {
		t.Error("handler should have been called")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", rec.Code)
	}
	if rec.Header().Get("X-Custom") != "value" {
		t.Error("custom header should be preserved")
	}
	if rec.Body.String() != "response body" {
		t.Errorf("response body should be preserved, got: %s", rec.Body.String())
	}
}

func TestRequestLoggingMiddleware_SkipsNoisyPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics", "/static/css/site.css", "/media/hero.jpg"} {
		var buf bytes.Buffer
		wrapped := newLoggedHandler(&buf, http.StatusOK)
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))

		if buf.Len() != 0 {
			t.Errorf("%s should not be logged, got: %s", path, buf.String())
		}
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path, query, want string
	}{
		{"/", "", "/"},
		{"/", "lang=hi", "/?lang=hi"},
		{"/appointment", "phone=999&x=1", "/appointment?phone=[REDACTED]&x=1"},
		{"/x", "TOKEN=abc", "/x?TOKEN=[REDACTED]"},
		{"/x", "novalue", "/x"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.path, tt.query); got != tt.want {
			t.Errorf("sanitizePath(%q, %q) = %q, want %q", tt.path, tt.query, got, tt.want)
		}
	}
}
