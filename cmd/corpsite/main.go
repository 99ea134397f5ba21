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
	"golang.org/x/term"

	"github.com/olegiv/corpsite-go/internal/auth"
	"github.com/olegiv/corpsite-go/internal/config"
	"github.com/olegiv/corpsite-go/internal/handler"
	"github.com/olegiv/corpsite-go/internal/middleware"
	"github.com/olegiv/corpsite-go/internal/service"
	"github.com/olegiv/corpsite-go/internal/store"
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
	hashPassword := flag.Bool("hash-password", false, "Read a password from stdin and print its hash")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "corpsite - Corporate Site Backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_TOKEN_SECRET       Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_ADMIN_CREDENTIALS  Admin allow-list: user:role:hash;... (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_DB_PATH            SQLite database path (default: ./data/corpsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_TOKEN_TTL          Session token lifetime (default: 24h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_STATS_TIMEZONE     Reference timezone for daily stats (default: UTC)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("corpsite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	// Handle -hash-password flag: utility mode for building the allow-list
	if *hashPassword {
		if err := runHashPassword(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// runHashPassword prompts for a password and prints its argon2id hash,
// ready to paste into a CORPSITE_ADMIN_CREDENTIALS entry.
func runHashPassword() error {
	_, _ = fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password must not be empty")
	}

	hash, err := auth.HashPassword(string(raw))
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	fmt.Println(hash)
	return nil
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Parse the admin allow-list before touching the database so a broken
	// credential string fails fast.
	credentials, err := auth.ParseCredentials(cfg.AdminCredentials)
	if err != nil {
		return fmt.Errorf("parsing admin credentials: %w", err)
	}
	slog.Info("admin allow-list loaded", "users", credentials.Len())

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
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

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	codec := auth.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	queries := store.New(db)
	stats := service.NewStatsService(queries, loc)
	secureCookies := !cfg.IsDevelopment()

	authHandler := handler.NewAuthHandler(credentials, codec, secureCookies)
	contactHandler := handler.NewContactHandler(db, cfg.DefaultLanguage)
	messagesHandler := handler.NewMessagesHandler(db)
	postsHandler := handler.NewPostsHandler(db)
	newsHandler := handler.NewNewsHandler(db)
	productsHandler := handler.NewProductsHandler(db)
	statsHandler := handler.NewStatsHandler(stats, credentials.Len())
	healthHandler := handler.NewHealthHandler(db)

	// Brute-force brakes: generous for the public form, tight for login.
	contactLimiter := middleware.NewIPRateLimiter(1, 5)
	loginLimiter := middleware.NewIPRateLimiter(0.5, 3)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	// Public routes
	r.Get("/healthz", healthHandler.Check)
	r.Get("/", middleware.LocaleRedirect(cfg.DefaultLanguage))
	r.Group(func(r chi.Router) {
		r.Use(contactLimiter.Middleware())
		r.Post("/contact", contactHandler.Submit)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware())
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(codec))

			r.Get("/verify", authHandler.Verify)
			r.Post("/logout", authHandler.Logout)

			r.Get("/stats", statsHandler.Snapshot)

			r.Get("/messages", messagesHandler.List)
			r.Get("/messages/{id}", messagesHandler.Get)
			r.Put("/messages/{id}", messagesHandler.Update)
			r.Delete("/messages/{id}", messagesHandler.Delete)

			r.Get("/posts", postsHandler.List)
			r.Post("/posts", postsHandler.Create)
			r.Get("/posts/{id}", postsHandler.Get)
			r.Put("/posts/{id}", postsHandler.Update)
			r.Delete("/posts/{id}", postsHandler.Delete)

			r.Get("/news", newsHandler.List)
			r.Post("/news", newsHandler.Create)
			r.Get("/news/{id}", newsHandler.Get)
			r.Put("/news/{id}", newsHandler.Update)
			r.Delete("/news/{id}", newsHandler.Delete)

			r.Get("/products", productsHandler.List)
			r.Post("/products", productsHandler.Create)
			r.Get("/products/{id}", productsHandler.Get)
			r.Put("/products/{id}", productsHandler.Update)
			r.Delete("/products/{id}", productsHandler.Delete)
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
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
