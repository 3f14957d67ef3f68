package site

import "strings"

// Meta is the declarative SEO description of a page. The public layout
// renders it into <title>, meta tags and a JSON-LD script.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Path        string
	// OGImage is a media key; the handler resolves it to a URL.
	OGImage string
	JSONLD  map[string]any
}

// Canonical returns the absolute URL of the page under baseURL.
func (m Meta) Canonical(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + m.Path
}

// Media keys for site photographs.
const (
	MediaHero     = "hero"
	MediaPortrait = "portrait"
	MediaCourt    = "court"
	MediaCases    = "cases-banner"
	MediaLogo     = "logo"
)

func legalService(description string, extra map[string]any) map[string]any {
	ld := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "LegalService",
		"name":      PracticeName,
		"telephone": Contact.PhoneE164,
	}
	if description != "" {
		ld["description"] = description
	}
	for k, v := range extra {
		ld[k] = v
	}
	return ld
}

func postalAddress() map[string]any {
	return map[string]any{
		"@type":           "PostalAddress",
		"streetAddress":   Contact.Street,
		"addressLocality": Contact.Locality,
		"addressRegion":   Contact.Region,
		"addressCountry":  Contact.Country,
	}
}

// Page metadata, one per route.
var (
	HomeMeta = Meta{
		Title:       "Advocate Nishanth H C | Legal Services in Chikkamagaluru",
		Description: "Trusted legal services in Chikkamagaluru, Karnataka. Civil, Criminal, Family, Property & Documentation by Advocate Nishanth H C.",
		Keywords:    "advocate Chikkamagaluru, lawyer Karnataka, civil cases, criminal defence, family law, property registration",
		Path:        "/",
		OGImage:     MediaHero,
		JSONLD: legalService("Legal services in Chikkamagaluru, Karnataka", map[string]any{
			"email":   Contact.Email,
			"address": postalAddress(),
		}),
	}

	AboutMeta = Meta{
		Title:       "About Advocate Nishanth H C | Legal Services in Chikkamagaluru",
		Description: "Learn about Advocate Nishanth H C, 5+ years of legal experience in Chikkamagaluru, Karnataka. Civil, Criminal, Family, and Property law specialist.",
		Keywords:    "about Nishanth HC advocate, lawyer Chikkamagaluru, Karnataka advocate",
		Path:        "/about",
		OGImage:     MediaPortrait,
		JSONLD: legalService("About Advocate Nishanth H C, Legal Services in Chikkamagaluru", map[string]any{
			"email": Contact.Email,
		}),
	}

	CasesMeta = Meta{
		Title:       "Cases & Services | Advocate Nishanth H C",
		Description: "Legal services by Advocate Nishanth H C: Civil cases, Criminal defence, Family law, Property law, and Documentation in Chikkamagaluru, Karnataka.",
		Keywords:    "civil cases Karnataka, criminal defence Chikkamagaluru, family law advocate, property registration lawyer",
		Path:        "/cases",
		OGImage:     MediaCases,
		JSONLD:      legalService("Legal services: Civil, Criminal, Family, Property, Documentation", nil),
	}

	AppointmentMeta = Meta{
		Title:       "Book Appointment | Advocate Nishanth H C",
		Description: "Book a legal consultation with Advocate Nishanth H C in Chikkamagaluru, Karnataka. Fill the form to connect via WhatsApp.",
		Keywords:    "book appointment advocate Chikkamagaluru, legal consultation Karnataka",
		Path:        "/appointment",
		JSONLD:      legalService("Book an appointment with Advocate Nishanth H C", nil),
	}

	ContactMeta = Meta{
		Title:       "Contact | Advocate Nishanth H C | Chikkamagaluru",
		Description: "Contact Advocate Nishanth H C in Chikkamagaluru, Karnataka. Phone, email, WhatsApp, and office location.",
		Keywords:    "contact advocate Chikkamagaluru, lawyer contact Karnataka, Nishanth HC advocate",
		Path:        "/contact",
		JSONLD: legalService("", map[string]any{
			"email":   Contact.Email,
			"address": postalAddress(),
		}),
	}

	NotFoundMeta = Meta{
		Title:       "Page Not Found | Advocate Nishanth H C",
		Description: "The page you are looking for does not exist.",
	}
)
