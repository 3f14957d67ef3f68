package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DukeRupert/nhcadvocate/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =============================================================================
// Error Response Tests - Security Focus
// =============================================================================

func TestValidationErrorResponse_DoesNotExposeOperationName(t *testing.T) {
	ve := domain.NewValidationError("appointment.Compose", "phone", "Phone number is required")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ValidationErrorResponse(w, r, discardLogger(), ve)
	})

	req := httptest.NewRequest("POST", "/appointment", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body := rec.Body.String()

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if strings.Contains(body, "appointment.Compose") {
		t.Errorf("response exposes internal operation name: %s", body)
	}
	if !strings.Contains(body, "check your input") {
		t.Errorf("response should have helpful guidance, got: %s", body)
	}
}

func TestValidationErrorResponse_JSONIncludesFields(t *testing.T) {
	ve := domain.NewValidationError("appointment.Compose", "caseType", "Please select a case type")
	ve.Fields["name"] = "Full name is required"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ValidationErrorResponse(w, r, discardLogger(), ve)
	})

	req := httptest.NewRequest("POST", "/appointment", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "appointment.Compose") {
		t.Errorf("JSON response exposes internal operation name: %s", rec.Body.String())
	}

	var resp JSONError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Error.Code != domain.EINVALID {
		t.Errorf("code = %q, want %q", resp.Error.Code, domain.EINVALID)
	}
	if resp.Error.Fields["caseType"] != "Please select a case type" {
		t.Errorf("caseType field = %q", resp.Error.Fields["caseType"])
	}
	if resp.Error.Fields["name"] != "Full name is required" {
		t.Errorf("name field = %q", resp.Error.Fields["name"])
	}
}

func TestValidationErrorResponse_NonValidationFallsBack(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/appointment", nil)

	ValidationErrorResponse(rec, req, discardLogger(), domain.RateLimit("appointment.Create"))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	internalErr := domain.Internal(&mockError{message: "template: appointment.html:12: nil pointer"}, "Renderer.Render", "Render failed")

	for _, accept := range []string{"text/html", "application/json"} {
		t.Run(accept, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/appointment", nil)
			req.Header.Set("Accept", accept)
			rec := httptest.NewRecorder()

			ErrorResponse(rec, req, discardLogger(), internalErr)

			body := rec.Body.String()
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
			if strings.Contains(body, "nil pointer") {
				t.Errorf("response exposes underlying error: %s", body)
			}
			if strings.Contains(body, "Renderer.Render") {
				t.Errorf("response exposes internal operation: %s", body)
			}
			if !strings.Contains(body, "internal error") {
				t.Errorf("response should contain generic message, got: %s", body)
			}
		})
	}
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	rawErr := &mockError{message: "open /srv/templates/secret.html: permission denied"}

	req := httptest.NewRequest("GET", "/about", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, discardLogger(), rawErr)

	body := rec.Body.String()
	if strings.Contains(body, "/srv") {
		t.Errorf("response exposes raw error: %s", body)
	}
	if !strings.Contains(body, "internal error") {
		t.Errorf("response should contain generic message, got: %s", body)
	}
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:   http.StatusBadRequest,
		domain.EFORBIDDEN: http.StatusForbidden,
		domain.ENOTFOUND:  http.StatusNotFound,
		domain.ERATELIMIT: http.StatusTooManyRequests,
		domain.EINTERNAL:  http.StatusInternalServerError,
		"unknown":         http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := ErrorCodeToHTTPStatus(code); got != want {
			t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestAcceptsJSON(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{"browser", map[string]string{"Accept": "text/html"}, false},
		{"accept json", map[string]string{"Accept": "application/json"}, true},
		{"json body", map[string]string{"Content-Type": "application/json"}, true},
		{"htmx wins", map[string]string{"Accept": "application/json", "HX-Request": "true"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/appointment", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := acceptsJSON(req); got != tt.want {
				t.Errorf("acceptsJSON = %v, want %v", got, tt.want)
			}
		})
	}
}

// mockError simulates an infrastructure error for testing
type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}
