// Copyright (c) 2025-2026 Oleg Ivanchenko
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

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/pvquote-go/internal/auth"
	"github.com/olegiv/pvquote-go/internal/chat"
	"github.com/olegiv/pvquote-go/internal/config"
	"github.com/olegiv/pvquote-go/internal/eventlog"
	"github.com/olegiv/pvquote-go/internal/geoip"
	"github.com/olegiv/pvquote-go/internal/handler"
	"github.com/olegiv/pvquote-go/internal/logging"
	"github.com/olegiv/pvquote-go/internal/mailer"
	"github.com/olegiv/pvquote-go/internal/middleware"
	"github.com/olegiv/pvquote-go/internal/offer"
	"github.com/olegiv/pvquote-go/internal/render"
	"github.com/olegiv/pvquote-go/internal/scheduler"
	"github.com/olegiv/pvquote-go/internal/session"
	"github.com/olegiv/pvquote-go/internal/store"
	"github.com/olegiv/pvquote-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "pvquote - PV lead capture service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_SESSION_SECRET     Session signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_ADMIN_USERNAME     Admin login name (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_ADMIN_PASSWORD_HASH  Argon2id hash of the admin password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_STORE              Lead store backend: file|sqlite (default: file)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_DATA_FILE          Lead JSON file path (default: ./data/leads.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_MAIL_USERNAME      SMTP username / sender address\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_RECIPIENT_EMAIL    Admin notification recipient\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_OPENAI_API_KEY     API key for the chat assistant\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PVQ_ENV                Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("pvquote %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// WARN and ERROR records also land in the in-memory event log shown
	// on the dashboard.
	events := eventlog.New(eventlog.DefaultCapacity)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewEventLogHandler(textHandler, events))
	slog.SetDefault(logger)

	// Lead store
	var (
		leads     store.LeadStore
		sessionDB = (*store.SQLiteStore)(nil)
	)
	if cfg.UseSQLiteStore() {
		slog.Info("initializing lead store", "backend", "sqlite", "path", cfg.DBPath)
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initializing sqlite store: %w", err)
		}
		leads = sqliteStore
		sessionDB = sqliteStore
	} else {
		slog.Info("initializing lead store", "backend", "file", "path", cfg.DataFile)
		fileStore, err := store.NewFileStore(cfg.DataFile)
		if err != nil {
			return fmt.Errorf("initializing file store: %w", err)
		}
		leads = fileStore
	}
	defer func() {
		if err := leads.Close(); err != nil {
			slog.Error("closing lead store", "error", err)
		}
	}()

	// Sessions
	var sessionManager *scs.SessionManager
	if sessionDB != nil {
		sessionManager = session.New(sessionDB.DB(), cfg.IsDevelopment())
	} else {
		sessionManager = session.New(nil, cfg.IsDevelopment())
	}

	// Renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	// Offer generation
	offers, err := offer.NewGenerator(cfg.OffersDir, cfg.LogoPath)
	if err != nil {
		return fmt.Errorf("creating offer generator: %w", err)
	}

	// Outbound mail
	var notifier handler.Notifier
	if cfg.MailEnabled {
		m, err := mailer.New(cfg)
		if err != nil {
			return fmt.Errorf("creating mailer: %w", err)
		}
		notifier = m
		slog.Info("mail notifications enabled", "server", cfg.MailServer, "recipient", cfg.RecipientEmail)
	} else {
		slog.Info("mail notifications disabled")
	}

	// Chat relay
	var relay handler.Asker
	if cfg.ChatEnabled {
		relay = chat.New(cfg)
		slog.Info("chat assistant enabled", "model", cfg.OpenAIModel)
	} else {
		slog.Info("chat assistant disabled")
	}

	// GeoIP lookup
	var geo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		geo, err = geoip.NewLookup(cfg.GeoIPDBPath)
		if err != nil {
			// Country resolution is best-effort
			slog.Warn("GeoIP lookup unavailable", "error", err)
			geo = nil
		} else {
			defer func() { _ = geo.Close() }()
		}
	}

	// Offer retention sweep
	sched := scheduler.New(logger, cfg.OffersDir, cfg.OfferRetention)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Handlers
	credential := auth.Credential{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	leadHandler := handler.NewLeadHandler(leads, offers, notifier, geo, renderer)
	chatHandler := handler.NewChatHandler(relay, renderer)
	authHandler := handler.NewAuthHandler(credential, renderer, sessionManager, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(leads, events, renderer)
	healthHandler := handler.NewHealthHandler(leads)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort)))

	r.Get(handler.RouteRoot, leadHandler.Home)
	r.Post(handler.RouteSubmit, leadHandler.Submit)
	r.Post(handler.RouteChat, chatHandler.Chat)
	r.Get(handler.RouteHealth, healthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(loginProtection.Middleware())
		r.Get(handler.RouteAdmin, authHandler.LoginForm)
		r.Post(handler.RouteAdmin, authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(sessionManager))
		r.Get(handler.RouteDashboard, dashboardHandler.Dashboard)
	})

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
