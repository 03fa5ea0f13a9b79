package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger is a dependency checked by /v1/ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolPinger adapts a pgx pool.
type PoolPinger struct{ Pool *pgxpool.Pool }

func (p PoolPinger) Ping(ctx context.Context) error { return p.Pool.Ping(ctx) }

// RedisPinger adapts a go-redis client.
type RedisPinger struct{ Client *redis.Client }

func (p RedisPinger) Ping(ctx context.Context) error { return p.Client.Ping(ctx).Err() }

// NewHandler builds the routed, middleware-wrapped handler for the API.
func NewHandler(cfg *config.App, logger zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer, api *trivia.HTTPHandlers, deps ...Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Question bank
	mux.HandleFunc("GET /categories", api.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", api.QuestionsByCategory)
	mux.HandleFunc("GET /questions", api.ListQuestions)
	mux.HandleFunc("POST /questions", api.CreateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", api.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", api.SearchQuestions)

	// Play
	mux.HandleFunc("POST /quizzes", api.NextQuestion)
	mux.HandleFunc("GET /ws/quizzes", api.HandleWebSocket)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeResourceNotFound, "Resource not found")
	})

	metrics := newHTTPMetrics(reg)
	return chain(mux,
		requestID,
		withLogger(logger),
		metrics.instrument,
		cors(cfg.CORS),
	)
}

// NewHTTPServer wraps NewHandler in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
