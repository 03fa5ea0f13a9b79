package trivia

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CategoryWarmer keeps the category cache populated so list calls rarely
// fall through to the store.
type CategoryWarmer struct {
	service  *Service
	interval time.Duration
	logger   zerolog.Logger
}

func NewCategoryWarmer(service *Service, interval time.Duration, logger zerolog.Logger) *CategoryWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CategoryWarmer{
		service:  service,
		interval: interval,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
	}
}

// Run refreshes immediately and then on every tick until ctx is done.
func (w *CategoryWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CategoryWarmer) refresh(ctx context.Context) {
	if err := w.service.RefreshCategories(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
	}
}
