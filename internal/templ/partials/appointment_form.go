package partials

import (
	"context"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/DukeRupert/nhcadvocate/internal/domain"
)

// =============================================================================
// Classes
// =============================================================================

const (
	labelClass    = "block text-sm font-medium mb-1 text-ink"
	inputClass    = "w-full px-4 py-2.5 rounded-lg text-sm bg-white text-ink border border-gold/30 outline-none transition focus:border-gold focus:ring-4 focus:ring-gold/10"
	inputErrClass = "border-red-500 focus:border-red-500 focus:ring-red-500/10"
	errorClass    = "field-error text-red-500 text-xs mt-1"
	buttonClass   = "btn-whatsapp w-full py-3 rounded-lg font-bold text-white bg-whatsapp flex items-center justify-center gap-2 transition hover:bg-whatsapp-dark"
)

// InputClass returns the class list for a form control.
func InputClass(hasError bool, extra ...string) string {
	classes := []string{inputClass}
	if hasError {
		classes = append(classes, inputErrClass)
	}
	classes = append(classes, extra...)
	return twmerge.Merge(strings.Join(classes, " "))
}

// =============================================================================
// Components
// =============================================================================

// AppointmentForm renders the appointment form. The same markup is used for
// the full page and for htmx swaps, so the form replaces itself.
func AppointmentForm(d AppointmentFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<form id="appointment-form" class="space-y-5" method="post" action="/appointment" novalidate`)
		b.WriteString(` hx-post="/appointment" hx-target="this" hx-swap="outerHTML" hx-disabled-elt="find button[type=submit]">`)
		b.WriteString(`<input type="hidden" name="csrf_token" value="` + esc(d.CSRFToken) + `">`)
		b.WriteString(`<input type="hidden" name="shown" value="` + esc(strings.Join(d.ShownFields(), ",")) + `">`)

		writeInput(&b, d, domain.FieldName, "text", "Full Name *", "Your full name", "name")
		writeInput(&b, d, domain.FieldPhone, "tel", "Phone Number *", "10-digit mobile number", "tel")
		writeCaseType(&b, d)

		if d.ShowDate {
			label := "Preferred Date"
			if d.DateRequired {
				label += " *"
			}
			writeInput(&b, d, domain.FieldDate, "date", label, "", "off")
		}
		if d.ShowMessage {
			writeMessage(&b, d)
		}

		writeStatus(&b, d.Status)

		b.WriteString(`<button type="submit" class="` + esc(buttonClass) + `">`)
		b.WriteString(whatsappIcon)
		b.WriteString(`Book Appointment via WhatsApp</button>`)
		b.WriteString(`<p class="text-xs text-center text-muted">This will open WhatsApp with your details pre-filled.</p>`)
		b.WriteString(`</form>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Status renders only the status area, for responses that retarget it.
func Status(s *FormStatus) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeStatus(&b, s)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// =============================================================================
// Helpers
// =============================================================================

// revalidate makes a control re-check itself when it changes.
const revalidate = ` hx-post="/appointment/validate" hx-trigger="change" hx-target="#appointment-form" hx-swap="outerHTML"`

func writeInput(b *strings.Builder, d AppointmentFormData, field, inputType, label, placeholder, autocomplete string) {
	msg := d.FieldError(field)
	id := "appt-" + field

	b.WriteString(`<div>`)
	b.WriteString(`<label for="` + id + `" class="` + labelClass + `">` + esc(label) + `</label>`)
	b.WriteString(`<input id="` + id + `" type="` + inputType + `" name="` + field + `"`)
	b.WriteString(` value="` + esc(d.Values.Value(field)) + `"`)
	if placeholder != "" {
		b.WriteString(` placeholder="` + esc(placeholder) + `"`)
	}
	b.WriteString(` autocomplete="` + autocomplete + `"`)
	b.WriteString(` class="` + esc(InputClass(msg != "")) + `"`)
	writeAria(b, id, msg)
	b.WriteString(revalidate + `>`)
	writeFieldError(b, id, msg)
	b.WriteString(`</div>`)
}

func writeCaseType(b *strings.Builder, d AppointmentFormData) {
	field := domain.FieldCaseType
	msg := d.FieldError(field)
	id := "appt-" + field
	selected := d.Values.CaseType

	extra := "text-ink"
	if selected == "" {
		extra = "text-muted"
	}

	b.WriteString(`<div>`)
	b.WriteString(`<label for="` + id + `" class="` + labelClass + `">Case Type *</label>`)
	b.WriteString(`<select id="` + id + `" name="` + field + `" class="` + esc(InputClass(msg != "", extra)) + `"`)
	writeAria(b, id, msg)
	b.WriteString(revalidate + `>`)
	b.WriteString(`<option value="">Select case type</option>`)
	for _, ct := range d.CaseTypes {
		b.WriteString(`<option value="` + esc(ct) + `"`)
		if ct == selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`>` + esc(ct) + `</option>`)
	}
	b.WriteString(`</select>`)
	writeFieldError(b, id, msg)
	b.WriteString(`</div>`)
}

func writeMessage(b *strings.Builder, d AppointmentFormData) {
	field := domain.FieldMessage
	msg := d.FieldError(field)
	id := "appt-" + field

	label := "Additional Details (Optional)"
	if d.MessageRequired {
		label = "Additional Details *"
	}

	b.WriteString(`<div>`)
	b.WriteString(`<label for="` + id + `" class="` + labelClass + `">` + label + `</label>`)
	b.WriteString(`<textarea id="` + id + `" name="` + field + `" rows="4" placeholder="Briefly describe your legal matter..."`)
	b.WriteString(` class="` + esc(InputClass(msg != "", "resize-none")) + `"`)
	writeAria(b, id, msg)
	b.WriteString(revalidate + `>`)
	b.WriteString(esc(d.Values.Message))
	b.WriteString(`</textarea>`)
	writeFieldError(b, id, msg)
	b.WriteString(`</div>`)
}

func writeAria(b *strings.Builder, id, msg string) {
	if msg != "" {
		b.WriteString(` aria-invalid="true" aria-describedby="` + id + `-error"`)
	}
}

func writeFieldError(b *strings.Builder, id, msg string) {
	if msg == "" {
		return
	}
	b.WriteString(`<p id="` + id + `-error" class="` + errorClass + `">` + esc(msg) + `</p>`)
}

func writeStatus(b *strings.Builder, s *FormStatus) {
	b.WriteString(`<div id="form-status" aria-live="polite">`)
	if s != nil && s.Message != "" {
		class := "form-status form-status-" + string(s.Kind)
		b.WriteString(`<p class="` + esc(class) + `" role="status">` + esc(s.Message))
		if s.LinkURL != "" {
			b.WriteString(` <a href="` + esc(s.LinkURL) + `" target="_blank" rel="noopener noreferrer" class="underline font-semibold">Open WhatsApp</a>`)
		}
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

const whatsappIcon = `<svg class="w-5 h-5" viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M20.52 3.48A11.86 11.86 0 0 0 12.04 0C5.5 0 .18 5.32.18 11.86c0 2.09.55 4.13 1.59 5.93L0 24l6.39-1.68a11.82 11.82 0 0 0 5.65 1.44h.01c6.54 0 11.86-5.32 11.86-11.86 0-3.17-1.23-6.15-3.39-8.42zM12.05 21.76h-.01a9.86 9.86 0 0 1-5.03-1.38l-.36-.21-3.79 1 1.01-3.7-.24-.38a9.82 9.82 0 0 1-1.51-5.23c0-5.44 4.43-9.87 9.88-9.87 2.64 0 5.12 1.03 6.98 2.9a9.8 9.8 0 0 1 2.89 6.98c0 5.45-4.43 9.89-9.82 9.89z"/></svg>`
