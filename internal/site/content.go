// Package site holds the static content of the practice's website: the
// navigation shell, service descriptions, contact details and per-page
// SEO metadata. Nothing here touches HTTP.
package site

import "strings"

// Practice identity.
const (
	PracticeName  = "Nishanth HC Advocate"
	AdvocateName  = "Advocate Nishanth H C"
	Locality      = "Chikkamagaluru, Karnataka"
	BrandShort    = "NHC Advocate"
	AdvocateTitle = "Advocate & Legal Consultant"
	YearsPractice = 5
)

// NavLink is one entry of the main navigation and footer quick links.
type NavLink struct {
	Path  string
	Label string
}

// Nav is the site navigation in display order.
var Nav = []NavLink{
	{Path: "/", Label: "Home"},
	{Path: "/about", Label: "About"},
	{Path: "/cases", Label: "Cases"},
	{Path: "/appointment", Label: "Appointment"},
	{Path: "/contact", Label: "Contact"},
}

// IsActive reports whether link should be highlighted for currentPath.
// Home matches only "/" exactly; other links match by prefix.
func (l NavLink) IsActive(currentPath string) bool {
	if l.Path == "/" {
		return currentPath == "/"
	}
	return currentPath == l.Path || strings.HasPrefix(currentPath, l.Path+"/")
}

// Service is a practice area card.
type Service struct {
	Key         string
	Icon        string
	Title       string
	Description string
}

// Services are the five practice areas shown on the cases page.
var Services = []Service{
	{
		Key:         "civil",
		Icon:        "⚖️",
		Title:       "Civil Cases",
		Description: "Comprehensive representation in civil disputes including property matters, injunctions, recovery suits, and civil appeals before district and high courts.",
	},
	{
		Key:         "criminal",
		Icon:        "🛡️",
		Title:       "Criminal Defence",
		Description: "Strong defence in criminal cases including bail applications, anticipatory bail, sessions court trials, and appeals in criminal matters.",
	},
	{
		Key:         "family",
		Icon:        "👨‍👩‍👧",
		Title:       "Family Law",
		Description: "Sensitive handling of matrimonial disputes, divorce proceedings, child custody, maintenance cases, and domestic relations matters.",
	},
	{
		Key:         "property",
		Icon:        "🏠",
		Title:       "Property Law",
		Description: "Expert guidance in property registration, title verification, sale deeds, gift deeds, partition suits, and property dispute resolution.",
	},
	{
		Key:         "documentation",
		Icon:        "📄",
		Title:       "Documentation",
		Description: "Professional drafting of legal notices, agreements, contracts, affidavits, power of attorney, and all legal documentation services.",
	},
}

// PracticeAreas is the checklist on the about page.
var PracticeAreas = []string{
	"Civil Cases & Property Disputes",
	"Criminal Defence & Bail Applications",
	"Family Law & Matrimonial Cases",
	"Property Registration & Documentation",
	"Legal Notices & Agreements",
	"Anticipatory Bail & Sessions Court",
}

// Stat is a home page counter. LabelKey indexes the translation table.
type Stat struct {
	Value    int
	Suffix   string
	LabelKey string
}

// Stats are the home page counters.
var Stats = []Stat{
	{Value: YearsPractice, Suffix: "+", LabelKey: "statsYears"},
	{Value: 500, Suffix: "+", LabelKey: "statsCases"},
	{Value: 100, Suffix: "%", LabelKey: "statsDedication"},
	{Value: len(Services), Suffix: "", LabelKey: "statsServices"},
}

// Quotes shown on the home and about pages.
const (
	HomeQuote  = "Justice is not just a word. It is a commitment I make to every client who walks through my door."
	AboutQuote = "Every client deserves dedicated representation and honest counsel. That is the standard I hold myself to every day."
)

// ContactInfo is the practice's contact card.
type ContactInfo struct {
	PhoneDisplay string
	PhoneE164    string
	Email        string
	Street       string
	Locality     string
	Region       string
	Country      string
	MapEmbedURL  string
}

// Contact is the practice's published contact information.
var Contact = ContactInfo{
	PhoneDisplay: "+91 94829 29768",
	PhoneE164:    "+919482929768",
	Email:        "adv.nishanthhc@gmail.com",
	Street:       "#T, 6th Cross Road, Block 9, Ward No 2, Vasathi Badavane",
	Locality:     "Hiremgaluru, Chikkamagaluru",
	Region:       "Karnataka",
	Country:      "IN",
	MapEmbedURL:  "https://maps.google.com/maps?q=Vasathi+Badavane,+Hiremgaluru,+Chikkamagaluru,+Karnataka,+India&output=embed",
}

// TelURL returns the tel: link for the practice phone.
func (c ContactInfo) TelURL() string {
	return "tel:" + c.PhoneE164
}

// MailtoURL returns the mailto: link for the practice email.
func (c ContactInfo) MailtoURL() string {
	return "mailto:" + c.Email
}

// Address returns the single-line postal address.
func (c ContactInfo) Address() string {
	return c.Street + ", " + c.Locality + ", " + c.Region
}
