package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Renderer manages template parsing and rendering with isolated template sets.
// Every page is parsed into its own clone of the public layout, so pages can
// all define "content" without colliding.
//
// Templates are organized as:
//   - layouts/public.html - the site shell, defines "public"
//   - components/*.html - reusable fragments shared by every page
//   - pages/*.html - one file per page, stored under its base name
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
	mu        sync.RWMutex

	fsys fs.FS
	dir  string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	// TemplatesDir loads templates from disk. When empty, FS is used.
	TemplatesDir string
	FS           fs.FS
	Logger       *slog.Logger
}

// NewRenderer creates a new template renderer. Templates read from disk can
// be kept fresh with Watch.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		logger:    cfg.Logger,
		fsys:      cfg.FS,
	}

	if cfg.TemplatesDir != "" {
		r.fsys = os.DirFS(cfg.TemplatesDir)
		r.dir = cfg.TemplatesDir
	}
	if r.fsys == nil {
		return nil, errors.New("renderer: no template source configured")
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	templates, err := parseTemplates(r.fsys)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	r.logger.Debug("templates loaded", "count", len(templates))
	return nil
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	componentFiles, err := fs.Glob(fsys, "components/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob components: %w", err)
	}

	base, err := template.New("public").Funcs(TemplateFuncs()).ParseFS(fsys, "layouts/public.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse public layout: %w", err)
	}

	if len(componentFiles) > 0 {
		base, err = base.ParseFS(fsys, componentFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse components: %w", err)
		}
	}

	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, errors.New("no page templates found")
	}

	for _, page := range pages {
		pageTmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(fsys, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		// Store as "home", "appointment", etc.
		name := strings.TrimSuffix(path.Base(page), path.Ext(page))
		templates[name] = pageTmpl
	}

	return templates, nil
}

// Reload re-parses all templates from the configured source.
func (r *Renderer) Reload() error {
	return r.loadTemplates()
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, "public", data)
}

// RenderHTTP renders a page with status 200.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data interface{}) {
	r.RenderHTTPStatus(w, http.StatusOK, name, data)
}

// RenderHTTPStatus renders a page with the given status. The page is
// rendered to a buffer first so a template error can still become a 500.
func (r *Renderer) RenderHTTPStatus(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// RenderComponent renders a templ component on its own, for htmx responses.
func (r *Renderer) RenderComponent(w http.ResponseWriter, req *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(req.Context(), &buf); err != nil {
		r.logger.Error("component render failed", "path", req.URL.Path, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ListTemplates returns a list of all loaded template names.
// Useful for debugging.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
