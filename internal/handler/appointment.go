package handler

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/DukeRupert/nhcadvocate/internal/appointment"
	"github.com/DukeRupert/nhcadvocate/internal/csrf"
	"github.com/DukeRupert/nhcadvocate/internal/domain"
	"github.com/DukeRupert/nhcadvocate/internal/metrics"
	"github.com/DukeRupert/nhcadvocate/internal/middleware"
	"github.com/DukeRupert/nhcadvocate/internal/site"
	"github.com/DukeRupert/nhcadvocate/internal/templ/partials"
)

// maxFormBytes bounds an appointment POST body.
const maxFormBytes = 64 << 10

// Status messages shown under the form.
const (
	msgOpening      = "Your message is ready. WhatsApp should open in a new tab."
	msgFixErrors    = "Please correct the highlighted fields."
	msgSessionStale = "Your session has expired. Please reload the page and try again."
)

// openWhatsAppEvent is the client event that opens the deep link.
const openWhatsAppEvent = "open-whatsapp"

// =============================================================================
// Template Data Types
// =============================================================================

// AppointmentPageData contains data for the appointment page.
type AppointmentPageData struct {
	PageData
	Form template.HTML
}

// =============================================================================
// Handler Configuration
// =============================================================================

// AppointmentHandler serves the appointment form and turns valid
// submissions into WhatsApp deep links. Nothing is stored.
type AppointmentHandler struct {
	composer *appointment.Composer
	pages    *PageHandler
	renderer TemplateRenderer
	logger   *slog.Logger
	isSecure bool
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(
	composer *appointment.Composer,
	pages *PageHandler,
	renderer TemplateRenderer,
	logger *slog.Logger,
	isSecure bool,
) *AppointmentHandler {
	return &AppointmentHandler{
		composer: composer,
		pages:    pages,
		renderer: renderer,
		logger:   logger,
		isSecure: isSecure,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the appointment routes. Both POST routes are
// body limited and CSRF protected; limit wraps only the submission.
//
// Routes:
// - GET  /appointment          -> Show
// - POST /appointment          -> Create
// - POST /appointment/validate -> Validate (htmx)
func (h *AppointmentHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	protect := csrf.Protect(h.CSRFFailure)

	mux.HandleFunc("GET /appointment", h.Show)
	mux.Handle("POST /appointment", limit(h.limitBody(protect(http.HandlerFunc(h.Create)))))
	mux.Handle("POST /appointment/validate", h.limitBody(protect(http.HandlerFunc(h.Validate))))
}

// limitBody caps the request body at maxFormBytes. Form bodies are parsed
// here so the CSRF check reads the capped form; an oversized or malformed
// form is a 400. JSON bodies are decoded later through the same cap.
func (h *AppointmentHandler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

		if !isJSONBody(r) {
			if err := r.ParseForm(); err != nil {
				ErrorResponse(w, r, h.logger, domain.Wrap(err, domain.EINVALID, "appointment.limitBody", "The form could not be read"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// GET /appointment - Show Form
// =============================================================================

// Show renders the empty appointment form.
func (h *AppointmentHandler) Show(w http.ResponseWriter, r *http.Request) {
	token := csrf.EnsureToken(w, r, h.isSecure)
	h.renderPage(w, r, http.StatusOK, h.formData(token, domain.AppointmentRequest{}, nil, nil))
}

// =============================================================================
// POST /appointment - Compose Deep Link
// =============================================================================

// Create validates the submission. An invalid one re-renders the form with
// every error; a valid one is answered with the deep link:
//   - JSON clients get {"url": ...}
//   - htmx gets a reset form plus an open-whatsapp client event
//   - plain form posts are redirected to the link
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "appointment.Create"

	req, err := h.decodeRequest(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Wrap(err, domain.EINVALID, op, "The appointment request could not be read"))
		return
	}

	errs := h.composer.Validate(req)
	if !errs.Valid() {
		verr := errs.Err(op)
		fields := verr.(*domain.ValidationError).FieldNames()
		metrics.AppointmentInvalid(fields)

		if acceptsJSON(r) {
			ValidationErrorResponse(w, r, h.logger, verr)
			return
		}

		h.logger.Info("appointment invalid",
			"fields", fields,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		data := h.formData(csrf.GetTokenFromRequest(r), req, errs, &partials.FormStatus{
			Kind:    partials.StatusError,
			Message: msgFixErrors,
		})
		h.respondForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	url, err := h.composer.Compose(req)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.AppointmentComposed(req.CaseType)
	h.logger.Info("appointment composed",
		"case_type", req.CaseType,
		"has_date", req.Date != "",
		"has_message", req.Message != "",
		"request_id", middleware.GetRequestID(r.Context()),
	)

	switch {
	case acceptsJSON(r):
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	case isHTMX(r):
		trigger, err := json.Marshal(map[string]any{
			openWhatsAppEvent: map[string]string{"url": url},
		})
		if err != nil {
			InternalErrorResponse(w, r, h.logger, err)
			return
		}
		w.Header().Set("HX-Trigger", string(trigger))
		data := h.formData(csrf.GetTokenFromRequest(r), domain.AppointmentRequest{}, nil, &partials.FormStatus{
			Kind:    partials.StatusSuccess,
			Message: msgOpening,
			LinkURL: url,
		})
		h.renderer.RenderComponent(w, r, http.StatusOK, partials.AppointmentForm(data))
	default:
		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

// =============================================================================
// POST /appointment/validate - Inline Revalidation
// =============================================================================

// Validate re-checks the form when a field changes. Errors are shown for
// the fields that were already showing one and for the changed field,
// except that a changed field left blank is not flagged until submit.
func (h *AppointmentHandler) Validate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Wrap(err, domain.EINVALID, "appointment.Validate", "The form could not be read"))
		return
	}

	shown := map[string]bool{}
	for _, f := range splitFields(r.PostFormValue("shown")) {
		shown[f] = true
	}
	trigger := r.Header.Get("HX-Trigger-Name")

	all := h.composer.Validate(req)
	display := domain.ValidationErrors{}
	for field, msg := range all {
		switch {
		case shown[field]:
			display[field] = msg
		case field == trigger && !req.IsBlank(field):
			display[field] = msg
		}
	}

	data := h.formData(csrf.GetTokenFromRequest(r), req, display, nil)
	h.renderer.RenderComponent(w, r, http.StatusOK, partials.AppointmentForm(data))
}

// CSRFFailure answers a POST whose token is missing or stale.
func (h *AppointmentHandler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("csrf validation failed",
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	if isHTMX(r) {
		w.Header().Set("HX-Retarget", "#form-status")
		w.Header().Set("HX-Reswap", "outerHTML")
		h.renderer.RenderComponent(w, r, http.StatusForbidden, partials.Status(&partials.FormStatus{
			Kind:    partials.StatusError,
			Message: msgSessionStale,
		}))
		return
	}
	ForbiddenResponse(w, r, h.logger)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeRequest reads an appointment from a JSON body or a form post.
// Optional fields outside the configured schema are dropped.
func (h *AppointmentHandler) decodeRequest(r *http.Request) (domain.AppointmentRequest, error) {
	var req domain.AppointmentRequest

	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req = domain.AppointmentRequest{
			Name:     r.PostFormValue(domain.FieldName),
			Phone:    r.PostFormValue(domain.FieldPhone),
			CaseType: r.PostFormValue(domain.FieldCaseType),
			Date:     r.PostFormValue(domain.FieldDate),
			Message:  r.PostFormValue(domain.FieldMessage),
		}
	}

	if !h.composer.InSchema(domain.FieldDate) {
		req.Date = ""
	}
	if !h.composer.InSchema(domain.FieldMessage) {
		req.Message = ""
	}
	return req, nil
}

func (h *AppointmentHandler) formData(token string, req domain.AppointmentRequest, errs domain.ValidationErrors, status *partials.FormStatus) partials.AppointmentFormData {
	return partials.AppointmentFormData{
		CSRFToken:       token,
		Values:          req,
		Errors:          errs,
		CaseTypes:       h.composer.CaseTypes(),
		ShowDate:        h.composer.InSchema(domain.FieldDate),
		DateRequired:    h.composer.Required(domain.FieldDate),
		ShowMessage:     h.composer.InSchema(domain.FieldMessage),
		MessageRequired: h.composer.Required(domain.FieldMessage),
		Status:          status,
	}
}

// respondForm answers htmx with the form alone and browsers with the page.
func (h *AppointmentHandler) respondForm(w http.ResponseWriter, r *http.Request, status int, data partials.AppointmentFormData) {
	if isHTMX(r) {
		h.renderer.RenderComponent(w, r, status, partials.AppointmentForm(data))
		return
	}
	h.renderPage(w, r, status, data)
}

func (h *AppointmentHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data partials.AppointmentFormData) {
	form, err := templ.ToGoHTML(r.Context(), partials.AppointmentForm(data))
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTPStatus(w, status, "appointment", AppointmentPageData{
		PageData: h.pages.Page(w, r, site.AppointmentMeta),
		Form:     form,
	})
}

func isJSONBody(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
