// Package media resolves the site's photographs to URLs and decides, on the
// server, whether a page shows the image or its text fallback.
//
// Three stores are available:
// - RemoteStore: fixed absolute URLs (the images hosted with the old site)
// - LocalStore: files under a directory, served at /media/
// - R2Store: a Cloudflare R2 (S3-compatible) bucket with a public URL
//
// Availability is checked at startup, cached by the Resolver and refreshed
// on an interval.
package media

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DukeRupert/nhcadvocate/internal/site"
)

// Store is a source of site images addressed by object key.
type Store interface {
	// URL returns the public URL for the object.
	URL(ctx context.Context, object string) (string, error)

	// Exists reports whether the object can be served.
	Exists(ctx context.Context, object string) (bool, error)
}

// Provider names.
const (
	ProviderRemote = "remote"
	ProviderLocal  = "local"
	ProviderR2     = "r2"
)

// Asset describes one photograph used by the site.
type Asset struct {
	Key       string // Site media key (site.MediaHero, ...)
	Object    string // Object key for local and R2 stores
	RemoteURL string // Absolute URL for the remote store
	Alt       string
	Fallback  string // Text shown when the image is unavailable
}

// Catalog lists every photograph the pages reference.
var Catalog = []Asset{
	{
		Key:       site.MediaHero,
		Object:    "hero.jpg",
		RemoteURL: "https://i.postimg.cc/dt02VtTd/Whats_App_Image_2026_02_26_at_6_16_08_PM.jpg",
		Alt:       site.AdvocateName,
		Fallback:  site.AdvocateName,
	},
	{
		Key:       site.MediaCases,
		Object:    "cases-banner.jpg",
		RemoteURL: "https://i.postimg.cc/ncL4hcQ9/Whats_App_Image_2026_02_26_at_6_16_08_PM_%281%29.jpg",
		Alt:       "Legal Services - " + site.AdvocateName,
		Fallback:  "Cases & Legal Services",
	},
	{
		Key:       site.MediaPortrait,
		Object:    "portrait.jpg",
		RemoteURL: "https://i.postimg.cc/PrqW5r8P/Whats_App_Image_2026_02_26_at_6_16_07_PM.jpg",
		Alt:       site.AdvocateName,
		Fallback:  site.AdvocateName,
	},
	{
		Key:       site.MediaCourt,
		Object:    "court.jpg",
		RemoteURL: "https://i.postimg.cc/RV0rRf2D/Whats-App-Image-2026-02-26-at-7-46-51-PM.jpg",
		Alt:       site.AdvocateName + " in court",
		Fallback:  "Professional Photo",
	},
	{
		Key:       site.MediaLogo,
		Object:    "logo.jpg",
		RemoteURL: "https://i.postimg.cc/RV0rRf2D/Whats-App-Image-2026-02-26-at-7-46-51-PM.jpg",
		Alt:       site.BrandShort + " - Nishanth H C",
		Fallback:  site.BrandShort,
	},
}

// RemoteURLs returns Catalog's object→URL table for NewRemoteStore.
func RemoteURLs(assets []Asset) map[string]string {
	urls := make(map[string]string, len(assets))
	for _, a := range assets {
		urls[a.Object] = a.RemoteURL
	}
	return urls
}

// Image is what a template needs to render a photograph or its fallback.
type Image struct {
	Key       string
	URL       string
	Alt       string
	Fallback  string
	Available bool
}

// Resolver caches the URL and availability of each catalog asset.
type Resolver struct {
	store  Store
	assets map[string]Asset
	logger *slog.Logger

	mu        sync.RWMutex
	images    map[string]Image
	onRefresh func(available int)
}

// NewResolver creates a resolver over store. Until Refresh runs, every image
// renders as its fallback.
func NewResolver(store Store, assets []Asset, logger *slog.Logger) *Resolver {
	r := &Resolver{
		store:  store,
		assets: make(map[string]Asset, len(assets)),
		logger: logger,
		images: make(map[string]Image, len(assets)),
	}
	for _, a := range assets {
		r.assets[a.Key] = a
		r.images[a.Key] = Image{Key: a.Key, Alt: a.Alt, Fallback: a.Fallback}
	}
	return r
}

// Refresh checks every asset against the store and caches the result.
// It returns the number of available images. Individual failures are
// logged and leave that image on its fallback.
func (r *Resolver) Refresh(ctx context.Context) int {
	images := make(map[string]Image, len(r.assets))
	available := 0

	for key, a := range r.assets {
		img := Image{Key: key, Alt: a.Alt, Fallback: a.Fallback}

		ok, err := r.store.Exists(ctx, a.Object)
		if err != nil {
			r.logger.Warn("media check failed", "key", key, "object", a.Object, "error", err)
		}
		if ok {
			url, err := r.store.URL(ctx, a.Object)
			if err != nil {
				r.logger.Warn("media url failed", "key", key, "object", a.Object, "error", err)
			} else {
				img.URL = url
				img.Available = true
				available++
			}
		}
		images[key] = img
	}

	r.mu.Lock()
	r.images = images
	r.mu.Unlock()

	r.logger.Info("media checked", "available", available, "total", len(r.assets))
	if r.onRefresh != nil {
		r.onRefresh(available)
	}
	return available
}

// OnRefresh registers fn to run after every refresh with the available count.
// Call it before Refresh or Run.
func (r *Resolver) OnRefresh(fn func(available int)) {
	r.onRefresh = fn
}

// Run re-checks the store every interval until ctx is cancelled.
func (r *Resolver) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			r.Refresh(refreshCtx)
			cancel()
		}
	}
}

// Image returns the cached image for key. Unknown keys render as an
// unavailable image whose fallback is the key itself.
func (r *Resolver) Image(key string) Image {
	r.mu.RLock()
	img, ok := r.images[key]
	r.mu.RUnlock()
	if !ok {
		return Image{Key: key, Fallback: key}
	}
	return img
}

// Images returns a snapshot of every cached image keyed by site media key.
func (r *Resolver) Images() map[string]Image {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Image, len(r.images))
	for k, v := range r.images {
		out[k] = v
	}
	return out
}
