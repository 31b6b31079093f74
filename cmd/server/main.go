package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"wordsteady/internal/audio"
	"wordsteady/internal/config"
	"wordsteady/internal/content"
	"wordsteady/internal/database"
	"wordsteady/internal/handlers"
	"wordsteady/internal/logger"
	"wordsteady/internal/repository"
	"wordsteady/internal/security"
	"wordsteady/internal/service"
)

const (
	stepDatabase   = "Database connection"
	stepMigrations = "Running migrations"
	stepTemplates  = "Loading templates"
	stepContent    = "Loading today's pack"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	loc, _ := cfg.Location()

	startup := handlers.NewStartup(stepDatabase, stepMigrations, stepTemplates, stepContent)

	// Initialize database with config (supports sqlite, postgres, mysql)
	startup.SetCurrentStep(stepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", "err", err)
	}
	defer db.Close()
	startup.CompleteStep(stepDatabase)
	logger.Info("Database connection established", "type", cfg.DatabaseType)

	startup.SetCurrentStep(stepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}
	startup.CompleteStep(stepMigrations)

	startup.SetCurrentStep(stepTemplates)
	templates, err := handlers.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		logger.Fatal("Failed to load templates", "err", err)
	}
	startup.CompleteStep(stepTemplates)

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = security.GenerateSecret()
		if err != nil {
			logger.Fatal("Failed to generate session secret", "err", err)
		}
		logger.Warn("SESSION_SECRET is not set; learner cookies will not survive a restart")
	}
	keys, err := security.DeriveKeys(secret)
	if err != nil {
		logger.Fatal("Invalid session secret", "err", err)
	}

	source, err := content.NewSource(context.Background(), cfg.ContentSourceOptions())
	if err != nil {
		logger.Fatal("Failed to configure content source", "err", err)
	}
	loader := content.NewLoader(source, loc)

	// Warm the cache so a broken pack shows up in the logs at boot
	startup.SetCurrentStep(stepContent)
	if pack, err := loader.Load(context.Background(), ""); err != nil {
		logger.Error("Today's pack is invalid", "err", err)
	} else {
		logger.Info("Today's pack ready", "word", pack.Word, "fallback", pack.Fallback)
	}
	startup.CompleteStep(stepContent)

	// Initialize services
	sessions := service.NewSessionService(repository.NewSessionRepository(db))
	var tts *audio.TTSService
	if cfg.AudioEnabled {
		tts = audio.NewTTSService(filepath.Join(cfg.StaticFilesPath, "audio"))
	}

	limiter := security.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	// Initialize handlers
	middleware := handlers.NewMiddleware(
		security.NewLearnerTokens(keys.Learner, cfg.LearnerTTL),
		security.NewCSRFGenerator(keys.CSRF),
		limiter,
	)
	playHandler := handlers.NewPlayHandler(loader, sessions, tts, middleware, templates)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(playHandler, middleware, startup, cfg.StaticFilesPath),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background session cleanup
	go purgeOldSessions(ctx, sessions, loc, cfg.PurgeAfterDays)

	go func() {
		logger.Info("Server starting", "addr", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "err", err)
		}
	}()
	startup.MarkReady()

	<-ctx.Done()
	logger.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "err", err)
	}
}

// purgeOldSessions periodically removes sessions of days the learner can no
// longer reach
func purgeOldSessions(ctx context.Context, sessions *service.SessionService, loc *time.Location, keepDays int) {
	if keepDays <= 0 {
		return
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		before := time.Now().In(loc).AddDate(0, 0, -keepDays)
		if n, err := sessions.Purge(ctx, before); err != nil {
			logger.Error("Error purging old sessions", "err", err)
		} else if n > 0 {
			logger.Info("Old sessions purged", "count", n, "before", before.Format(time.DateOnly))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
