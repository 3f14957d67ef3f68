// Package appointment turns an appointment form submission into a
// pre-filled WhatsApp deep link.
//
// The composer is pure: it never opens the link, stores the request or
// talks to the network. Callers validate, then hand the URL to the browser.
package appointment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/DukeRupert/nhcadvocate/internal/domain"
)

// Field error messages.
const (
	MsgNameRequired     = "Full name is required"
	MsgPhoneRequired    = "Phone number is required"
	MsgPhoneInvalid     = "Enter a valid 10-digit Indian mobile number"
	MsgCaseTypeRequired = "Please select a case type"
	MsgDateRequired     = "Preferred date is required"
	MsgMessageRequired  = "Please provide details about your case"
)

var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)

// Composer validates appointment requests and builds deep links for them.
// It is immutable after construction and safe for concurrent use.
type Composer struct {
	cfg       Config
	caseTypes map[string]struct{}
	schema    map[string]bool
	required  map[string]bool
}

// NewComposer creates a composer for cfg. It returns an EINVALID error if
// the configuration is unusable.
func NewComposer(cfg Config) (*Composer, error) {
	cfg = cfg.normalize()
	if err := cfg.check(); err != nil {
		return nil, err
	}

	c := &Composer{
		cfg:       cfg,
		caseTypes: make(map[string]struct{}, len(cfg.CaseTypes)),
		schema:    make(map[string]bool, len(cfg.SchemaFields)),
		required:  make(map[string]bool, len(cfg.RequiredFields)),
	}
	for _, ct := range cfg.CaseTypes {
		c.caseTypes[ct] = struct{}{}
	}
	for _, f := range cfg.SchemaFields {
		c.schema[f] = true
	}
	for _, f := range cfg.RequiredFields {
		c.required[f] = true
	}
	return c, nil
}

// MustNewComposer is like NewComposer but panics on error.
func MustNewComposer(cfg Config) *Composer {
	c, err := NewComposer(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// CaseTypes returns the accepted case types in display order.
func (c *Composer) CaseTypes() []string {
	return append([]string(nil), c.cfg.CaseTypes...)
}

// StrictPhone reports whether phone numbers are format-checked.
func (c *Composer) StrictPhone() bool {
	return c.cfg.StrictPhone
}

// InSchema reports whether field is part of the form. Name, phone and case
// type always are.
func (c *Composer) InSchema(field string) bool {
	if !domain.IsOptionalField(field) {
		return field == domain.FieldName || field == domain.FieldPhone || field == domain.FieldCaseType
	}
	return c.schema[field]
}

// Required reports whether field must be filled in.
func (c *Composer) Required(field string) bool {
	if !domain.IsOptionalField(field) {
		return c.InSchema(field)
	}
	return c.required[field]
}

// RecipientNumber returns the configured WhatsApp number.
func (c *Composer) RecipientNumber() string {
	return c.cfg.RecipientNumber
}

// ChatURL returns the bare click-to-chat link with no pre-filled text.
func (c *Composer) ChatURL() string {
	return c.cfg.BaseURL + c.cfg.RecipientNumber
}

// Validate checks every field of req and returns all failures at once.
// The returned map is empty when req is valid.
func (c *Composer) Validate(req domain.AppointmentRequest) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if req.IsBlank(domain.FieldName) {
		errs[domain.FieldName] = MsgNameRequired
	}

	if msg := c.validatePhone(req.Phone); msg != "" {
		errs[domain.FieldPhone] = msg
	}

	if _, ok := c.caseTypes[req.CaseType]; !ok {
		errs[domain.FieldCaseType] = MsgCaseTypeRequired
	}

	if c.Required(domain.FieldDate) && req.IsBlank(domain.FieldDate) {
		errs[domain.FieldDate] = MsgDateRequired
	}

	if c.Required(domain.FieldMessage) && req.IsBlank(domain.FieldMessage) {
		errs[domain.FieldMessage] = MsgMessageRequired
	}

	return errs
}

func (c *Composer) validatePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return MsgPhoneRequired
	}
	if c.cfg.StrictPhone && !indianMobile.MatchString(stripSpace(trimmed)) {
		return MsgPhoneInvalid
	}
	return ""
}

// Message builds the plain-text WhatsApp message for req. Field values are
// inserted as typed. It does not validate.
func (c *Composer) Message(req domain.AppointmentRequest) string {
	var b strings.Builder

	b.WriteString(c.cfg.Salutation)
	b.WriteString("\n\nI would like to book an appointment.\n\n")
	b.WriteString("Name: " + req.Name + "\n")
	b.WriteString("Phone: " + req.Phone + "\n")
	b.WriteString("Case Type: " + req.CaseType)

	if c.InSchema(domain.FieldDate) && req.Date != "" {
		b.WriteString("\nPreferred Date: " + req.Date)
	}
	if c.InSchema(domain.FieldMessage) && req.Message != "" {
		b.WriteString("\nDetails: " + req.Message)
	}

	b.WriteString("\n\n")
	b.WriteString(c.cfg.Closing)
	return b.String()
}

// Compose validates req and returns the deep link carrying its message.
//
// Calling Compose with an invalid request is a caller bug; it returns an
// EINVALID error wrapping the *domain.ValidationError and never a URL.
func (c *Composer) Compose(req domain.AppointmentRequest) (string, error) {
	const op = "appointment.Compose"

	if err := c.Validate(req).Err(op); err != nil {
		return "", domain.Wrap(err, domain.EINVALID, op, "appointment request is invalid")
	}

	return c.ChatURL() + "?text=" + EscapeComponent(c.Message(req)), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
