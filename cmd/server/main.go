package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/DukeRupert/nhcadvocate/internal"
	"github.com/DukeRupert/nhcadvocate/internal/appointment"
	"github.com/DukeRupert/nhcadvocate/internal/handler"
	"github.com/DukeRupert/nhcadvocate/internal/media"
	"github.com/DukeRupert/nhcadvocate/internal/metrics"
	"github.com/DukeRupert/nhcadvocate/internal/middleware"
	"github.com/DukeRupert/nhcadvocate/web"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logOut, logFile := internal.LogWriter(os.Stdout, cfg.LogFile)
	defer logFile.Close()
	logger := internal.NewLogger(logOut, cfg.Env, cfg.LogLevel)

	// Appointment form schema
	composer, err := appointment.NewComposer(cfg.Appointment)
	if err != nil {
		return fmt.Errorf("appointment configuration invalid: %w", err)
	}
	logger.Info("Appointment form ready",
		"recipient", composer.RecipientNumber(),
		"case_types", len(composer.CaseTypes()),
		"strict_phone", composer.StrictPhone(),
	)

	// Initialize media
	store, localMedia, err := newMediaStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("media initialization failed: %w", err)
	}
	resolver := media.NewResolver(store, media.Catalog, logger)
	resolver.OnRefresh(func(available int) {
		metrics.MediaAvailable.Set(float64(available))
	})

	refreshCtx, cancelRefresh := context.WithTimeout(ctx, 30*time.Second)
	resolver.Refresh(refreshCtx)
	cancelRefresh()

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: cfg.TemplatesDir,
		FS:           web.Templates(),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize middleware
	isSecure := !cfg.IsDevelopment()
	clientIP := middleware.NewClientIP(cfg.TrustedProxies)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger, clientIP)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPasswordHash)

	appointmentLimiter := middleware.NewRateLimiter(cfg.AppointmentRateLimit, cfg.AppointmentRateWindow, logger)
	defer appointmentLimiter.Stop()
	appointmentRateLimit := middleware.NewRateLimitMiddleware("appointment", appointmentLimiter, clientIP, logger)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(renderer, resolver, handler.PagesConfig{
		BaseURL:     cfg.BaseURL,
		DefaultLang: cfg.DefaultLang,
		ChatURL:     composer.ChatURL(),
		IsSecure:    isSecure,
	}, logger)
	appointmentHandler := handler.NewAppointmentHandler(composer, pageHandler, renderer, logger, isSecure)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	if localMedia != nil {
		mux.Handle("GET /media/", http.StripPrefix("/media/", localMedia.Handler()))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	if cfg.MetricsUsername == "" {
		logger.Warn("Metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD_HASH")
	}
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Appointment form
	appointmentHandler.RegisterRoutes(mux, appointmentRateLimit.Limit)

	// Content pages and the catch-all 404
	pageHandler.RegisterRoutes(mux)

	stack := middleware.Stack(
		middleware.RequestID,
		loggingMw.Handler,
		securityMw.Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "media", cfg.MediaProvider, "trusted_proxies", len(cfg.TrustedProxies))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		resolver.Run(gctx, cfg.MediaRefreshInterval)
		return nil
	})

	if cfg.TemplatesDir != "" && cfg.IsDevelopment() {
		g.Go(func() error {
			if err := renderer.Watch(gctx); err != nil {
				logger.Warn("Template watcher stopped", "error", err)
			}
			return nil
		})
	}

	// Wait for an interrupt signal or a failed server
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, initiating graceful shutdown...")

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newMediaStore builds the configured image store. The local store is also
// returned so its files can be served.
func newMediaStore(cfg *internal.Config, logger *slog.Logger) (media.Store, *media.LocalStore, error) {
	switch cfg.MediaProvider {
	case media.ProviderLocal:
		local, err := media.NewLocalStore(cfg.LocalMediaPath, "/media", logger)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	case media.ProviderR2:
		r2, err := media.NewR2Store(media.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
			PresignExpiry:   cfg.R2PresignExpiry,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return r2, nil, nil
	default:
		return media.NewRemoteStore(media.RemoteURLs(media.Catalog), nil, logger), nil, nil
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
