package site

import (
	"golang.org/x/text/language"
)

// Lang is a supported home page language.
type Lang string

const (
	LangEnglish Lang = "en"
	LangKannada Lang = "kn"
	LangHindi   Lang = "hi"
)

// LangCookie stores the visitor's chosen language.
const LangCookie = "nhc-lang"

// Langs lists the supported languages in switcher order.
var Langs = []Lang{LangEnglish, LangKannada, LangHindi}

// Label is the switcher button text for l.
func (l Lang) Label() string {
	switch l {
	case LangKannada:
		return "ಕನ್ನಡ"
	case LangHindi:
		return "हिंदी"
	default:
		return "EN"
	}
}

// ParseLang returns the Lang for s if it is supported.
func ParseLang(s string) (Lang, bool) {
	switch Lang(s) {
	case LangEnglish, LangKannada, LangHindi:
		return Lang(s), true
	}
	return "", false
}

// The matcher's tag order must follow Langs.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Kannada,
	language.Hindi,
})

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header. It returns false when nothing matches.
func MatchAcceptLanguage(header string) (Lang, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return Langs[index], true
}

// ResolveLang picks the language for a request: explicit query value,
// then the saved cookie, then Accept-Language, then fallback.
func ResolveLang(query, cookie, acceptLanguage string, fallback Lang) Lang {
	if l, ok := ParseLang(query); ok {
		return l
	}
	if l, ok := ParseLang(cookie); ok {
		return l
	}
	if l, ok := MatchAcceptLanguage(acceptLanguage); ok {
		return l
	}
	return fallback
}

// Translations is the static lookup of home page strings.
var Translations = map[Lang]map[string]string{
	LangEnglish: {
		"heroHeading":       "Advocate Nishanth H C",
		"heroSubheading":    "Trusted Legal Counsel",
		"heroTagline":       "Civil, Criminal, Family, Property & Documentation",
		"bookAppointment":   "Book Appointment",
		"whatsappNow":       "WhatsApp Now",
		"statsYears":        "Years Experience",
		"statsCases":        "Cases Handled",
		"statsDedication":   "Dedication",
		"statsServices":     "Practice Areas",
		"servicesTitle":     "Our Services",
		"civil":             "Civil Cases",
		"civilDesc":         "Representation in civil disputes, injunctions, recovery suits and appeals.",
		"criminal":          "Criminal Defence",
		"criminalDesc":      "Bail, anticipatory bail, sessions trials and criminal appeals.",
		"family":            "Family Law",
		"familyDesc":        "Divorce, custody, maintenance and matrimonial disputes.",
		"property":          "Property & Registration",
		"propertyDesc":      "Title verification, sale and gift deeds, partition and registration.",
		"documentation":     "Legal Documentation",
		"documentationDesc": "Legal notices, agreements, affidavits and power of attorney.",
	},
	LangKannada: {
		"heroHeading":       "ವಕೀಲ ನಿಶಾಂತ್ ಎಚ್ ಸಿ",
		"heroSubheading":    "ವಿಶ್ವಾಸಾರ್ಹ ಕಾನೂನು ಸಲಹೆ",
		"heroTagline":       "ಸಿವಿಲ್, ಕ್ರಿಮಿನಲ್, ಕುಟುಂಬ, ಆಸ್ತಿ ಮತ್ತು ದಾಖಲೆಗಳು",
		"bookAppointment":   "ಭೇಟಿ ಕಾಯ್ದಿರಿಸಿ",
		"whatsappNow":       "ವಾಟ್ಸಾಪ್ ಮಾಡಿ",
		"statsYears":        "ವರ್ಷಗಳ ಅನುಭವ",
		"statsCases":        "ನಿರ್ವಹಿಸಿದ ಪ್ರಕರಣಗಳು",
		"statsDedication":   "ಸಮರ್ಪಣೆ",
		"statsServices":     "ಸೇವಾ ಕ್ಷೇತ್ರಗಳು",
		"servicesTitle":     "ನಮ್ಮ ಸೇವೆಗಳು",
		"civil":             "ಸಿವಿಲ್ ಪ್ರಕರಣಗಳು",
		"civilDesc":         "ಸಿವಿಲ್ ವ್ಯಾಜ್ಯಗಳು, ತಡೆಯಾಜ್ಞೆ, ವಸೂಲಿ ದಾವೆಗಳು ಮತ್ತು ಮೇಲ್ಮನವಿಗಳು.",
		"criminal":          "ಕ್ರಿಮಿನಲ್ ಪ್ರತಿವಾದ",
		"criminalDesc":      "ಜಾಮೀನು, ನಿರೀಕ್ಷಣಾ ಜಾಮೀನು, ಸೆಷನ್ಸ್ ವಿಚಾರಣೆ ಮತ್ತು ಮೇಲ್ಮನವಿಗಳು.",
		"family":            "ಕುಟುಂಬ ಕಾನೂನು",
		"familyDesc":        "ವಿಚ್ಛೇದನ, ಮಕ್ಕಳ ಪಾಲನೆ, ಜೀವನಾಂಶ ಮತ್ತು ವೈವಾಹಿಕ ವ್ಯಾಜ್ಯಗಳು.",
		"property":          "ಆಸ್ತಿ ಮತ್ತು ನೋಂದಣಿ",
		"propertyDesc":      "ಹಕ್ಕು ಪರಿಶೀಲನೆ, ಕ್ರಯ ಮತ್ತು ದಾನ ಪತ್ರಗಳು, ವಿಭಾಗ ಮತ್ತು ನೋಂದಣಿ.",
		"documentation":     "ಕಾನೂನು ದಾಖಲೆಗಳು",
		"documentationDesc": "ಕಾನೂನು ನೋಟಿಸ್, ಒಪ್ಪಂದಗಳು, ಪ್ರಮಾಣಪತ್ರಗಳು ಮತ್ತು ಅಧಿಕಾರ ಪತ್ರ.",
	},
	LangHindi: {
		"heroHeading":       "अधिवक्ता निशांत एच सी",
		"heroSubheading":    "विश्वसनीय कानूनी सलाह",
		"heroTagline":       "दीवानी, फौजदारी, पारिवारिक, संपत्ति और दस्तावेज़ीकरण",
		"bookAppointment":   "अपॉइंटमेंट बुक करें",
		"whatsappNow":       "व्हाट्सऐप करें",
		"statsYears":        "वर्षों का अनुभव",
		"statsCases":        "संभाले गए मामले",
		"statsDedication":   "समर्पण",
		"statsServices":     "सेवा क्षेत्र",
		"servicesTitle":     "हमारी सेवाएँ",
		"civil":             "दीवानी मामले",
		"civilDesc":         "दीवानी विवाद, निषेधाज्ञा, वसूली वाद और अपीलें।",
		"criminal":          "फौजदारी बचाव",
		"criminalDesc":      "जमानत, अग्रिम जमानत, सत्र न्यायालय मुकदमे और अपीलें।",
		"family":            "पारिवारिक कानून",
		"familyDesc":        "तलाक, बच्चों की अभिरक्षा, भरण-पोषण और वैवाहिक विवाद।",
		"property":          "संपत्ति और पंजीकरण",
		"propertyDesc":      "स्वामित्व सत्यापन, विक्रय और दान विलेख, बंटवारा और पंजीकरण।",
		"documentation":     "कानूनी दस्तावेज़",
		"documentationDesc": "कानूनी नोटिस, अनुबंध, शपथपत्र और मुख्तारनामा।",
	},
}

// T returns the translation of key in l, falling back to English and then
// to the key itself.
func T(l Lang, key string) string {
	if s, ok := Translations[l][key]; ok {
		return s
	}
	if s, ok := Translations[LangEnglish][key]; ok {
		return s
	}
	return key
}
