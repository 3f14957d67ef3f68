// Package handler contains the HTTP handlers of the practice's website.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/DukeRupert/nhcadvocate/internal/media"
	"github.com/DukeRupert/nhcadvocate/internal/site"
)

// TemplateRenderer is the subset of *Renderer the handlers use.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, name string, data interface{})
	RenderHTTPStatus(w http.ResponseWriter, status int, name string, data interface{})
	RenderComponent(w http.ResponseWriter, r *http.Request, status int, c templ.Component)
}

// ImageSource provides the resolved site photographs.
type ImageSource interface {
	Images() map[string]media.Image
}

// langCookieMaxAge keeps a chosen language for a year.
const langCookieMaxAge = 365 * 24 * 60 * 60

// =============================================================================
// Template Data Types
// =============================================================================

// PageData is the data the public layout needs on every page.
type PageData struct {
	CurrentPath string
	Lang        site.Lang
	Langs       []site.Lang
	Meta        site.Meta
	Canonical   string
	OGImage     string
	Nav         []site.NavLink
	Contact     site.ContactInfo
	ChatURL     string
	Images      map[string]media.Image
}

// HomePageData contains data for the home page.
type HomePageData struct {
	PageData
	Stats    []site.Stat
	Services []site.Service
	Quote    string
}

// AboutPageData contains data for the about page.
type AboutPageData struct {
	PageData
	PracticeAreas []string
	Years         int
	Quote         string
}

// CasesPageData contains data for the cases page.
type CasesPageData struct {
	PageData
	Services []site.Service
}

// =============================================================================
// Handler Configuration
// =============================================================================

// PagesConfig holds the settings shared by every page.
type PagesConfig struct {
	BaseURL     string
	DefaultLang site.Lang
	ChatURL     string
	IsSecure    bool
}

// PageHandler serves the content pages.
type PageHandler struct {
	renderer TemplateRenderer
	images   ImageSource
	cfg      PagesConfig
	logger   *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer TemplateRenderer, images ImageSource, cfg PagesConfig, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		images:   images,
		cfg:      cfg,
		logger:   logger,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the content pages and the catch-all 404.
//
// Routes:
// - GET /         -> Home
// - GET /about    -> About
// - GET /cases    -> Cases
// - GET /contact  -> Contact
// - *   /         -> NotFound
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /about", h.About)
	mux.HandleFunc("GET /cases", h.Cases)
	mux.HandleFunc("GET /contact", h.Contact)
	mux.HandleFunc("/", h.NotFound)
}

// =============================================================================
// Pages
// =============================================================================

// Home renders the landing page in the visitor's language.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "home", HomePageData{
		PageData: h.Page(w, r, site.HomeMeta),
		Stats:    site.Stats,
		Services: site.Services,
		Quote:    site.HomeQuote,
	})
}

// About renders the biography page.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "about", AboutPageData{
		PageData:      h.Page(w, r, site.AboutMeta),
		PracticeAreas: site.PracticeAreas,
		Years:         site.YearsPractice,
		Quote:         site.AboutQuote,
	})
}

// Cases renders the practice area cards.
func (h *PageHandler) Cases(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "cases", CasesPageData{
		PageData: h.Page(w, r, site.CasesMeta),
		Services: site.Services,
	})
}

// Contact renders the contact details and map.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "contact", h.Page(w, r, site.ContactMeta))
}

// NotFound renders the 404 page, or a JSON error for API clients.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if acceptsJSON(r) {
		NotFoundResponse(w, r, h.logger)
		return
	}

	h.renderer.RenderHTTPStatus(w, http.StatusNotFound, "404", h.Page(w, r, site.NotFoundMeta))
}

// =============================================================================
// Helpers
// =============================================================================

// Page builds the layout data for r. It resolves the visitor's language and
// remembers an explicit ?lang= choice in a cookie.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request, meta site.Meta) PageData {
	lang := h.resolveLang(w, r)
	images := h.images.Images()

	data := PageData{
		CurrentPath: r.URL.Path,
		Lang:        lang,
		Langs:       site.Langs,
		Meta:        meta,
		Canonical:   meta.Canonical(h.cfg.BaseURL),
		Nav:         site.Nav,
		Contact:     site.Contact,
		ChatURL:     h.cfg.ChatURL,
		Images:      images,
	}
	if img, ok := images[meta.OGImage]; ok && img.Available {
		data.OGImage = img.URL
	}
	return data
}

func (h *PageHandler) resolveLang(w http.ResponseWriter, r *http.Request) site.Lang {
	query := r.URL.Query().Get("lang")

	var saved string
	if c, err := r.Cookie(site.LangCookie); err == nil {
		saved = c.Value
	}

	lang := site.ResolveLang(query, saved, r.Header.Get("Accept-Language"), h.cfg.DefaultLang)

	if chosen, ok := site.ParseLang(query); ok && query != saved {
		http.SetCookie(w, &http.Cookie{
			Name:     site.LangCookie,
			Value:    string(chosen),
			Path:     "/",
			MaxAge:   langCookieMaxAge,
			Expires:  time.Now().Add(langCookieMaxAge * time.Second),
			Secure:   h.cfg.IsSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return lang
}
