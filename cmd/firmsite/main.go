// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dmarchetti/firmsite-go/internal/cache"
	"github.com/dmarchetti/firmsite-go/internal/cms"
	"github.com/dmarchetti/firmsite-go/internal/config"
	"github.com/dmarchetti/firmsite-go/internal/handler"
	"github.com/dmarchetti/firmsite-go/internal/logging"
	"github.com/dmarchetti/firmsite-go/internal/middleware"
	"github.com/dmarchetti/firmsite-go/internal/nav"
	"github.com/dmarchetti/firmsite-go/internal/relay"
	"github.com/dmarchetti/firmsite-go/internal/render"
	"github.com/dmarchetti/firmsite-go/internal/scheduler"
	"github.com/dmarchetti/firmsite-go/internal/seo"
	"github.com/dmarchetti/firmsite-go/internal/version"
	"github.com/dmarchetti/firmsite-go/internal/views"
	"github.com/dmarchetti/firmsite-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// sitemapWarmSchedule prebuilds the sitemap so the first crawler after
// a cache flush never pays the full collection walk.
const sitemapWarmSchedule = "@every 15m"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "firmsite - law firm marketing site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_CMS_BASE_URL       CMS API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_CMS_TOKEN          Bearer token for the CMS read API\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_SITE_URL           Public site URL for canonical links and the sitemap\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_REVALIDATE_SECRET  Revalidation webhook secret (required in production)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_LEAD_WEBHOOK_URL   Automation endpoint for contact form submissions\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FIRMSITE_CHAT_WEBHOOK_URL   Automation endpoint for chat messages\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Println(version.Info{
			Version:   appVersion,
			GitCommit: appGitCommit,
			BuildTime: appBuildTime,
		})
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	ctx := context.Background()

	backend, err := cache.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	pages := cache.NewTagged(backend)
	navCache := cache.NewTypedCache[[]nav.Item](backend, cfg.CacheTTL())

	client := cms.NewClient(cfg.CMSBaseURL, cfg.CMSToken, cfg.CMSTimeout(), logger)

	renderer, err := render.New(views.FS)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	slog.Info("template renderer initialized")

	site := seo.SiteConfig{SiteName: cfg.SiteName, SiteURL: cfg.SiteURL}

	frontendHandler := handler.NewFrontendHandler(client, renderer, pages, navCache, site, cfg.CacheTTL(), logger)
	revalidateHandler := handler.NewRevalidateHandler(pages, cfg.RevalidateSecret, logger)
	leadHandler := handler.NewLeadHandler(relay.New(logger), cfg.LeadWebhookURL, cfg.ChatWebhookURL, logger)
	sitemapHandler := handler.NewSitemapHandler(client, pages, site, cfg.CacheTTL(), logger)
	robotsHandler := handler.NewRobotsHandler(cfg.SiteURL, cfg.Env != "production")
	healthHandler := handler.NewHealthHandler(client, backend)

	sched := scheduler.New(logger)
	if err := sched.AddJob(sitemapWarmSchedule, "sitemap-warm", sitemapHandler.Warm); err != nil {
		return fmt.Errorf("scheduling sitemap warm: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Static assets: cache for 1 day
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(86400)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Post("/api/revalidate", revalidateHandler.Revalidate)
	r.Post("/api/lead", leadHandler.Lead)
	r.Post("/api/chat", leadHandler.Chat)

	r.Get("/sitemap.xml", sitemapHandler.Index)
	r.Get("/sitemap-{n}.xml", sitemapHandler.Chunk)
	r.Get("/robots.txt", robotsHandler.Robots)

	r.Get("/", frontendHandler.Home)
	r.Get("/*", frontendHandler.Page)
	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
