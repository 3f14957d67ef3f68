package appointment

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DukeRupert/nhcadvocate/internal/domain"
)

const (
	// DefaultBaseURL is the WhatsApp click-to-chat endpoint.
	DefaultBaseURL = "https://wa.me/"

	// DefaultRecipientNumber is the practice's WhatsApp number with country code.
	DefaultRecipientNumber = "919482929768"

	DefaultSalutation = "Hello Advocate Nishanth H C,"
	DefaultClosing    = "Please let me know your availability."
)

// Config describes one appointment form schema and its deep-link target.
//
// Two revisions of the form exist: strict phone checking with an optional
// message, and lenient phone checking with a required date and message.
// Both are expressed through this struct rather than separate code paths.
type Config struct {
	// RecipientNumber is the WhatsApp number (digits only, with country code).
	RecipientNumber string `validate:"required,numeric,min=8,max=15"`

	// CaseTypes is the ordered set of accepted case types.
	CaseTypes []string `validate:"required,min=1,dive,required"`

	// StrictPhone requires a 10-digit Indian mobile number.
	// When false, the phone is only checked for presence.
	StrictPhone bool

	// SchemaFields lists which optional fields (date, message) the form has.
	SchemaFields []string `validate:"dive,oneof=date message"`

	// RequiredFields lists which schema fields must be filled in.
	RequiredFields []string `validate:"dive,oneof=date message"`

	Salutation string
	Closing    string
	BaseURL    string `validate:"omitempty,url"`
}

// DefaultConfig returns the configuration the site currently ships with:
// strict phone validation, an optional details field and no date field.
func DefaultConfig() Config {
	return Config{
		RecipientNumber: DefaultRecipientNumber,
		CaseTypes:       append([]string(nil), domain.StandardCaseTypes...),
		StrictPhone:     true,
		SchemaFields:    []string{domain.FieldMessage},
	}
}

// ExtendedConfig returns the alternate revision of the form: extended case
// labels, presence-only phone check, and required date and details.
func ExtendedConfig() Config {
	return Config{
		RecipientNumber: DefaultRecipientNumber,
		CaseTypes:       append([]string(nil), domain.ExtendedCaseTypes...),
		StrictPhone:     false,
		SchemaFields:    []string{domain.FieldDate, domain.FieldMessage},
		RequiredFields:  []string{domain.FieldDate, domain.FieldMessage},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// normalize trims list entries, drops duplicates and fills in defaults.
func (c Config) normalize() Config {
	c.RecipientNumber = strings.TrimPrefix(strings.TrimSpace(c.RecipientNumber), "+")
	c.CaseTypes = uniqueTrimmed(c.CaseTypes, false)
	c.SchemaFields = uniqueTrimmed(c.SchemaFields, true)
	c.RequiredFields = uniqueTrimmed(c.RequiredFields, true)

	if c.Salutation == "" {
		c.Salutation = DefaultSalutation
	}
	if c.Closing == "" {
		c.Closing = DefaultClosing
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	return c
}

// check validates struct tags and the required ⊆ schema rule.
func (c Config) check() error {
	const op = "appointment.Config"

	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return domain.Wrap(err, domain.EINVALID, op, configErrorMessage(fieldErrs[0]))
		}
		return domain.Wrap(err, domain.EINVALID, op, "invalid appointment configuration")
	}

	for _, f := range c.RequiredFields {
		if !contains(c.SchemaFields, f) {
			return domain.Invalid(op, fmt.Sprintf("required field %q is not part of the form schema", f))
		}
	}
	return nil
}

func configErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Namespace() + " is required"
	case "numeric":
		return fe.Namespace() + " must contain digits only"
	case "min":
		return fe.Namespace() + " must have at least " + fe.Param() + " entries or characters"
	case "max":
		return fe.Namespace() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return fe.Namespace() + " must be one of: " + fe.Param()
	case "url":
		return fe.Namespace() + " must be a valid URL"
	default:
		return fe.Namespace() + " is invalid"
	}
}

func uniqueTrimmed(in []string, lower bool) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
