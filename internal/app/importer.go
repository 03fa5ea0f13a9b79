package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// NewImporter wires an Open Trivia DB importer against the configured
// database. The returned func releases the pool.
func NewImporter(ctx context.Context, cfg *config.App) (*importer.Importer, func(), error) {
	logger := logging.New(cfg.Name+"-importer", cfg.Env, cfg.LogLevel)

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	svc := newTriviaService(pool, nil, cfg, nil, logger)
	client := importer.NewOpenTDBClient(cfg.Importer.OpenTDBURL, &http.Client{Timeout: cfg.Importer.RequestTimeout})

	return importer.New(client, svc, importer.Options{BatchDelay: cfg.Importer.BatchDelay}, logger), pool.Close, nil
}
