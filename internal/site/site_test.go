package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavLink_IsActive(t *testing.T) {
	home := NavLink{Path: "/", Label: "Home"}
	about := NavLink{Path: "/about", Label: "About"}

	assert.True(t, home.IsActive("/"))
	assert.False(t, home.IsActive("/about"))

	assert.True(t, about.IsActive("/about"))
	assert.True(t, about.IsActive("/about/team"))
	assert.False(t, about.IsActive("/aboutus"))
	assert.False(t, about.IsActive("/"))
}

func TestResolveLang(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		cookie   string
		accept   string
		fallback Lang
		want     Lang
	}{
		{"query wins", "kn", "hi", "en-US", LangEnglish, LangKannada},
		{"cookie when no query", "", "hi", "kn", LangEnglish, LangHindi},
		{"invalid query falls through", "fr", "", "", LangEnglish, LangEnglish},
		{"accept language", "", "", "hi-IN,hi;q=0.9,en;q=0.8", LangEnglish, LangHindi},
		{"accept kannada", "", "", "kn", LangEnglish, LangKannada},
		{"unsupported accept", "", "", "ja-JP", LangKannada, LangKannada},
		{"nothing set", "", "", "", LangHindi, LangHindi},
		{"garbage cookie", "", "xx", "", LangEnglish, LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLang(tt.query, tt.cookie, tt.accept, tt.fallback))
		})
	}
}

func TestTranslations_Complete(t *testing.T) {
	english := Translations[LangEnglish]
	for _, l := range Langs {
		for key := range english {
			assert.NotEmpty(t, Translations[l][key], "%s missing %q", l, key)
		}
	}
	for _, s := range Stats {
		assert.Contains(t, english, s.LabelKey)
	}
}

func TestT_Fallbacks(t *testing.T) {
	assert.Equal(t, "Book Appointment", T(LangEnglish, "bookAppointment"))
	assert.Equal(t, "Book Appointment", T(Lang("fr"), "bookAppointment"))
	assert.Equal(t, "no.such.key", T(LangHindi, "no.such.key"))
}

func TestMeta_Canonical(t *testing.T) {
	assert.Equal(t, "https://nhcadvocate.in/about", AboutMeta.Canonical("https://nhcadvocate.in/"))
	assert.Equal(t, "http://localhost:8080/", HomeMeta.Canonical("http://localhost:8080"))
}

func TestMeta_JSONLD(t *testing.T) {
	for _, m := range []Meta{HomeMeta, AboutMeta, CasesMeta, AppointmentMeta, ContactMeta} {
		assert.Equal(t, "LegalService", m.JSONLD["@type"], m.Path)
		assert.Equal(t, Contact.PhoneE164, m.JSONLD["telephone"], m.Path)
		assert.NotEmpty(t, m.Title)
		assert.NotEmpty(t, m.Description)
	}
	_, hasAddress := ContactMeta.JSONLD["address"]
	assert.True(t, hasAddress)
	_, hasDescription := ContactMeta.JSONLD["description"]
	assert.False(t, hasDescription)
}

func TestContactInfo_Links(t *testing.T) {
	assert.Equal(t, "tel:+919482929768", Contact.TelURL())
	assert.Equal(t, "mailto:adv.nishanthhc@gmail.com", Contact.MailtoURL())
	assert.Contains(t, Contact.Address(), "Chikkamagaluru")
}
