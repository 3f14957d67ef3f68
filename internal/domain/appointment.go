package domain

import "strings"

// Appointment form field names. These are the keys of ValidationErrors and
// the name attributes of the form inputs.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldCaseType = "caseType"
	FieldDate     = "date"
	FieldMessage  = "message"
)

// OptionalFields are the fields a form schema may include or leave out.
// Name, phone and case type are always part of the schema.
var OptionalFields = []string{FieldDate, FieldMessage}

// IsOptionalField reports whether name is one of OptionalFields.
func IsOptionalField(name string) bool {
	for _, f := range OptionalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Case type label sets observed on the two revisions of the appointment page.
var (
	StandardCaseTypes = []string{
		"Civil Case",
		"Criminal Defence",
		"Family Law",
		"Property Matter",
		"Documentation",
		"Other",
	}

	ExtendedCaseTypes = []string{
		"Civil Case",
		"Criminal Defence",
		"Family Law",
		"Property & Registration",
		"Legal Documentation",
		"Other",
	}
)

// AppointmentRequest is a single appointment request as typed into the form.
// It lives only for the duration of one request and is never stored.
type AppointmentRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	CaseType string `json:"caseType"`
	Date     string `json:"date,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Value returns the raw value of the named field.
func (r AppointmentRequest) Value(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldCaseType:
		return r.CaseType
	case FieldDate:
		return r.Date
	case FieldMessage:
		return r.Message
	default:
		return ""
	}
}

// IsBlank reports whether the named field is empty after trimming.
func (r AppointmentRequest) IsBlank(field string) bool {
	return strings.TrimSpace(r.Value(field)) == ""
}

// ValidationErrors maps a field name to its error message. An empty map
// means the request is valid.
type ValidationErrors map[string]string

// Valid reports whether there are no field errors.
func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

// Has reports whether the field has an error.
func (e ValidationErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the error message for field, or "".
func (e ValidationErrors) Get(field string) string {
	return e[field]
}

// Err converts non-empty errors into a *ValidationError for op.
// Returns nil when there are no errors.
func (e ValidationErrors) Err(op string) error {
	if e.Valid() {
		return nil
	}
	fields := make(map[string]string, len(e))
	for k, v := range e {
		fields[k] = v
	}
	return &ValidationError{Op: op, Fields: fields}
}
