// Package main implements the entry point for the recall-api server:
// a spaced-repetition flashcard service with deck management, JWT
// authentication and optional LLM-backed phrase suggestions.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sstepanov/recall-api/internal/config"
	"github.com/sstepanov/recall-api/internal/domain/srs"
	"github.com/sstepanov/recall-api/internal/generation"
	"github.com/sstepanov/recall-api/internal/platform/gemini"
	"github.com/sstepanov/recall-api/internal/platform/logger"
	"github.com/sstepanov/recall-api/internal/platform/postgres"
	"github.com/sstepanov/recall-api/internal/service/auth"
	"github.com/sstepanov/recall-api/internal/service/deck"
	"github.com/sstepanov/recall-api/internal/service/review"
	"github.com/sstepanov/recall-api/internal/store"
)

// application holds the wired dependencies for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore

	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	reviewService review.Service
	deckService   deck.Service
	generator     generation.PhraseGenerator
}

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := runMigrations(app.db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if *migrateOnly {
		return
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, opens the
// database and wires the service graph.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,
	}
	if err := app.wireServices(); err != nil {
		return nil, err
	}
	return app, nil
}

// setupDatabase opens the PostgreSQL connection and verifies it with a ping.
func setupDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// wireServices constructs stores and services from the open database
// connection and configuration.
func (app *application) wireServices() error {
	cardStore := postgres.NewPostgresCardStore(app.db, app.logger)
	deckStore := postgres.NewPostgresDeckStore(app.db, app.logger)
	app.userStore = postgres.NewPostgresUserStore(app.db, app.logger)
	runner := postgres.NewTxRunner(app.db, app.logger)

	jwtService, err := auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.hasher = auth.NewBcryptHasher()

	reviewService, err := review.NewService(
		runner, cardStore, deckStore, srs.NewDefaultService(), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create review service: %w", err)
	}
	app.reviewService = reviewService

	deckService, err := deck.NewService(deckStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create deck service: %w", err)
	}
	app.deckService = deckService

	// Phrase generation is optional: without an API key the endpoint
	// reports itself unavailable and everything else runs normally.
	if app.config.LLM.GeminiAPIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		generator, err := gemini.NewPhraseGenerator(ctx, app.logger, app.config.LLM)
		if err != nil {
			return fmt.Errorf("failed to create phrase generator: %w", err)
		}
		app.generator = generator
	} else {
		slog.Info("no Gemini API key configured, phrase generation disabled")
	}

	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}
}
