package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"qsolve/adapters/llm"
	"qsolve/adapters/memstore"
	"qsolve/adapters/ocr"
	"qsolve/adapters/postgres"
	"qsolve/internal/config"
	"qsolve/ports"
	"qsolve/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging()

	figure.NewFigure("qsolve", "cybermedium", true).Print()

	store, err := newStorage(cfg)
	if err != nil {
		return err
	}

	recognizer := ocr.NewTesseractRecognizer(cfg.OCR.Language)
	generator := llm.NewGeminiGenerator(llm.Config{
		APIKey:      cfg.AI.GeminiKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	})
	if cfg.AI.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; /api/solutions will fail until configured")
	}

	server, err := ui.NewServer(cfg, store, recognizer, generator)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: server.Handler()}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newStorage picks the PostgreSQL store when DATABASE_URL is configured and
// falls back to the in-memory store otherwise.
func newStorage(cfg *config.Config) (ports.Storage, error) {
	if cfg.Database.URL == "" {
		log.Info().Msg("using in-memory store; data is lost on restart")
		return memstore.NewStore(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	store := postgres.NewStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	log.Info().Msg("using PostgreSQL store")
	return store, nil
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
