package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func newMetricsAuth(t *testing.T, user, pass string) *MetricsAuthMiddleware {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewMetricsAuthMiddleware(user, string(hash))
}

func metricsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("metrics data"))
	})
}

func TestMetricsAuthMiddleware_AllowsValidCredentials(t *testing.T) {
	wrapped := newMetricsAuth(t, "prometheus", "secret123").Handler(metricsHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("prometheus", "secret123")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "metrics data" {
		t.Errorf("expected body 'metrics data', got %q", rec.Body.String())
	}
}

func TestMetricsAuthMiddleware_RejectsNoCredentials(t *testing.T) {
	wrapped := newMetricsAuth(t, "prometheus", "secret123").Handler(metricsHandler())

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="metrics"` {
		t.Errorf("unexpected WWW-Authenticate header: %q", got)
	}
}

func TestMetricsAuthMiddleware_RejectsBadCredentials(t *testing.T) {
	wrapped := newMetricsAuth(t, "prometheus", "secret123").Handler(metricsHandler())

	testCases := []struct {
		user string
		pass string
	}{
		{"prometheus", "wrong"},
		{"wrong", "secret123"},
		{"wrong", "wrong"},
		{"", ""},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/metrics", nil)
		req.SetBasicAuth(tc.user, tc.pass)
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("user=%q pass=%q: expected 401, got %d", tc.user, tc.pass, rec.Code)
		}
	}
}

func TestMetricsAuthMiddleware_RejectsMalformedAuth(t *testing.T) {
	wrapped := newMetricsAuth(t, "prometheus", "secret123").Handler(metricsHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("Authorization", "Basic notvalidbase64!!!")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_RejectsPlaintextHashConfig(t *testing.T) {
	// A plaintext password in METRICS_PASSWORD_HASH never matches
	wrapped := NewMetricsAuthMiddleware("prometheus", "secret123").Handler(metricsHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("prometheus", "secret123")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_HeaderInjection(t *testing.T) {
	wrapped := newMetricsAuth(t, "prometheus", "secret123").Handler(metricsHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	malicious := base64.StdEncoding.EncodeToString([]byte("prometheus:secret123\r\nX-Injected: header"))
	req.Header.Set("Authorization", "Basic "+malicious)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for injection attempt, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_DisabledWhenNoCredentials(t *testing.T) {
	wrapped := NewMetricsAuthMiddleware("", "").Handler(metricsHandler())

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 when auth is disabled, got %d", rec.Code)
	}
}
