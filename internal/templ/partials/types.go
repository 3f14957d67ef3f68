// Package partials holds templ components that are rendered both inside a
// full page and on their own as htmx responses.
package partials

import "github.com/DukeRupert/nhcadvocate/internal/domain"

// AppointmentFormData contains everything the appointment form needs.
type AppointmentFormData struct {
	CSRFToken string
	Values    domain.AppointmentRequest
	Errors    domain.ValidationErrors
	CaseTypes []string

	// Schema
	ShowDate        bool
	DateRequired    bool
	ShowMessage     bool
	MessageRequired bool

	// Status is shown above the submit button after a submission.
	Status *FormStatus
}

// FormStatus is a one-line message in the form's status area.
type FormStatus struct {
	Kind    StatusKind
	Message string
	LinkURL string // optional "open WhatsApp" link
}

// StatusKind selects the status styling.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// FieldError returns the message to show for field, or "".
func (d AppointmentFormData) FieldError(field string) string {
	if d.Errors == nil {
		return ""
	}
	return d.Errors.Get(field)
}

// ShownFields lists the fields currently displaying an error, in form order.
func (d AppointmentFormData) ShownFields() []string {
	var out []string
	for _, f := range []string{domain.FieldName, domain.FieldPhone, domain.FieldCaseType, domain.FieldDate, domain.FieldMessage} {
		if d.FieldError(f) != "" {
			out = append(out, f)
		}
	}
	return out
}
