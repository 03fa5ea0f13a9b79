package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	var (
		amount     = flag.Int("amount", 20, "Number of questions to request from Open Trivia DB")
		difficulty = flag.String("difficulty", "", "Restrict to easy, medium or hard")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", "trivia-importer").Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	switch *difficulty {
	case "", "easy", "medium", "hard":
	default:
		log.Fatal().Str("difficulty", *difficulty).Msg("difficulty must be easy, medium or hard")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	imp, closeFn, err := app.NewImporter(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build importer")
	}

	report, err := imp.Import(ctx, *amount, *difficulty)
	closeFn()
	if err != nil {
		log.Fatal().Err(err).Int("imported", report.Imported).Msg("import stopped early")
	}
	log.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("duplicates", report.Duplicates).
		Int("unmapped", report.Unmapped).
		Int("rejected", report.Rejected).
		Msg("import complete")
}
