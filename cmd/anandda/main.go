// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/cloudinary"
	"github.com/anandda/magazine/internal/config"
	"github.com/anandda/magazine/internal/flipbook"
	"github.com/anandda/magazine/internal/handler"
	"github.com/anandda/magazine/internal/handler/api"
	"github.com/anandda/magazine/internal/imaging"
	"github.com/anandda/magazine/internal/logging"
	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/render"
	"github.com/anandda/magazine/internal/scheduler"
	"github.com/anandda/magazine/internal/service"
	"github.com/anandda/magazine/internal/session"
	"github.com/anandda/magazine/internal/store"
	"github.com/anandda/magazine/internal/version"
	"github.com/anandda/magazine/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Cache lifetimes for public responses, in seconds.
const (
	publicAPIMaxAge  = 60
	staticPageMaxAge = 3600
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Anandda - digital magazine server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_SESSION_SECRET          Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_DB_PATH                 SQLite database path (default: ./data/anandda.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_SERVER_PORT             Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_ENV                     Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_REDIS_URL               Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_CLOUDINARY_CLOUD_NAME   Cloudinary cloud for uploads (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ANANDDA_ADMIN_EMAIL             Admin account seeded on first start (optional)\n")
	}

	flag.Parse()

	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Warnings and errors also go to the audit log from here on.
	logger = slog.New(logging.NewAuditLogHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}), db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.SeedAdmin() {
		if err := store.SeedAdmin(ctx, db, store.AdminSeed{
			Email: cfg.AdminEmail, Password: cfg.AdminPassword, Name: cfg.AdminName,
		}); err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}
	}
	if cfg.DemoMode {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	appCache, cacheBackend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cacheTTL,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = appCache.Close() }()
	slog.Info("cache initialized", "backend", cacheBackend)

	// Services
	prober := flipbook.NewProber(flipbook.NewHTTPImageChecker(cfg.FlipbookProbeTimeout))
	flipbooks := service.NewFlipbookService(db, prober, appCache, service.FlipbookOptions{
		Wait:     cfg.FlipbookWait,
		CacheTTL: cfg.FlipbookCacheTTL,
	})
	defer flipbooks.Close()
	publicService := service.NewPublicService(db, appCache, cacheTTL)
	adminService := service.NewAdminService(db, appCache, flipbooks)
	auditService := service.NewAuditService(db)

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.Templates,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	sched := scheduler.New(logger)
	if err := registerJobs(sched, cfg, flipbooks, auditService); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// Handlers
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Close()

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	pagesHandler, err := handler.NewPagesHandler(renderer, web.Pages)
	if err != nil {
		return fmt.Errorf("initializing static pages: %w", err)
	}
	adminHandler := handler.NewAdminHandler(adminService, auditService, appCache, sched)
	healthHandler := handler.NewHealthHandler(db, appCache, cacheBackend, versionInfo.Short())
	apiHandler := api.NewHandler(publicService, adminService, flipbooks)
	uploadHandler := api.NewUploadHandler(
		cloudinary.NewClient(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}),
		imaging.NewProcessor(cfg.UploadMaxDimension),
		cfg.UploadMaxBytes,
	)
	if !cfg.CloudinaryEnabled() {
		slog.Warn("cloudinary is not configured, uploads are disabled", "category", model.EventCategoryMedia)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5, "application/json", "text/html", "text/css"))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadUser(sessionManager, db))
	r.Use(middleware.Gate)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	// Health probes skip the request timeout so they never report a slow 503.
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	rateLimiter := middleware.NewGlobalRateLimiter(20, 40)
	requestTimeout := middleware.Timeout(30 * time.Second)

	// Static pages
	r.Group(func(r chi.Router) {
		r.Use(requestTimeout)
		r.Use(middleware.PublicCache(staticPageMaxAge))
		for _, name := range pagesHandler.Names() {
			r.Get("/"+name, pagesHandler.Page(name))
		}
	})

	// Auth and the gated dashboard
	r.Group(func(r chi.Router) {
		r.Use(requestTimeout)
		r.Use(middleware.NoStore())
		r.With(loginProtection.Middleware()).Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
		r.Get(handler.RouteAdmin, adminHandler.Dashboard)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())

		r.Group(func(r chi.Router) {
			r.Use(requestTimeout)

			r.With(middleware.NoStore()).Get("/auth/get-session", api.GetSession)

			r.Group(func(r chi.Router) {
				r.Use(middleware.PublicCache(publicAPIMaxAge))
				apiHandler.RegisterPublic(r)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdminAPI)
				r.Use(middleware.NoStore())
				apiHandler.RegisterAdmin(r)
				adminHandler.RegisterAPI(r)
			})
		})

		// Uploads get a longer deadline than the other routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(5 * time.Minute))
			r.Use(middleware.RequireAdminAPI)
			r.Use(middleware.NoStore())
			r.Post("/upload/cloudinary", uploadHandler.Cloudinary)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       5 * time.Minute, // Large flipbook PDFs
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      6 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Short())
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

// registerJobs adds the flipbook warm-up and audit cleanup jobs.
func registerJobs(sched *scheduler.Scheduler, cfg *config.Config, flipbooks *service.FlipbookService, audit *service.AuditService) error {
	if cfg.FlipbookWarmSchedule != "" {
		err := sched.Add("flipbook-warm", "Probe the page images of published flipbooks",
			cfg.FlipbookWarmSchedule, 10*time.Minute, func(ctx context.Context) error {
				n, err := flipbooks.Warm(ctx)
				if err != nil {
					return err
				}
				slog.Info("flipbooks warmed", "issues", n, "category", model.EventCategoryFlipbook)
				return nil
			})
		if err != nil {
			return fmt.Errorf("registering flipbook warm job: %w", err)
		}
	}

	if cfg.AuditRetention > 0 {
		err := sched.Add("audit-cleanup", "Delete audit entries past retention",
			"@daily", time.Minute, func(ctx context.Context) error {
				n, err := audit.Cleanup(ctx, cfg.AuditRetention)
				if err != nil {
					return err
				}
				if n > 0 {
					slog.Info("audit log cleaned", "deleted", n, "category", model.EventCategorySystem)
				}
				return nil
			})
		if err != nil {
			return fmt.Errorf("registering audit cleanup job: %w", err)
		}
	}
	return nil
}
