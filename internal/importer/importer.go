package importer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Source yields raw questions from an external trivia provider.
type Source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error)
}

// Bank is the slice of the trivia service the importer writes through, so
// imported rows pass the same validation as API-created ones.
type Bank interface {
	Categories(ctx context.Context) ([]trivia.Category, error)
	SearchQuestions(ctx context.Context, req trivia.SearchRequest) (trivia.SearchResult, error)
	CreateQuestion(ctx context.Context, req trivia.CreateQuestionRequest) (trivia.Question, error)
}

// Report summarizes one import run.
type Report struct {
	Fetched    int
	Imported   int
	Duplicates int
	Unmapped   int
	Rejected   int
}

type Options struct {
	// BatchDelay is waited between provider calls; Open Trivia DB allows one
	// request per five seconds per client.
	BatchDelay time.Duration
}

// Importer copies external questions into the local bank.
type Importer struct {
	source     Source
	bank       Bank
	batchDelay time.Duration
	logger     zerolog.Logger
}

func New(source Source, bank Bank, opts Options, logger zerolog.Logger) *Importer {
	return &Importer{
		source:     source,
		bank:       bank,
		batchDelay: opts.BatchDelay,
		logger:     logger.With().Str("component", "importer").Logger(),
	}
}

// Import fetches amount questions in batches and stores the ones that map to
// a local category and are not already present. A failed batch stops the run;
// the report covers everything stored before it.
func (im *Importer) Import(ctx context.Context, amount int, difficulty string) (Report, error) {
	var report Report
	if amount <= 0 {
		return report, fmt.Errorf("amount must be positive, got %d", amount)
	}

	categories, err := im.bank.Categories(ctx)
	if err != nil {
		return report, fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(c.Type)] = c.ID
	}

	for remaining := amount; remaining > 0; {
		if report.Fetched > 0 {
			if err := sleep(ctx, im.batchDelay); err != nil {
				return report, err
			}
		}

		batch, err := im.source.Fetch(ctx, min(remaining, MaxBatch), difficulty)
		if err != nil {
			if errors.Is(err, ErrNoResults) {
				im.logger.Info().Int("remaining", remaining).Msg("provider has no more questions for the query")
				return report, nil
			}
			return report, fmt.Errorf("fetch batch: %w", err)
		}
		if len(batch) == 0 {
			return report, nil
		}

		report.Fetched += len(batch)
		remaining -= len(batch)
		for _, raw := range batch {
			if err := im.store(ctx, raw, byName, &report); err != nil {
				return report, err
			}
		}
	}

	im.logger.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("duplicates", report.Duplicates).
		Int("unmapped", report.Unmapped).
		Int("rejected", report.Rejected).
		Msg("import finished")
	return report, nil
}

func (im *Importer) store(ctx context.Context, raw OpenTDBQuestion, byName map[string]int64, report *Report) error {
	categoryID, ok := mapCategory(html.UnescapeString(raw.Category), byName)
	if !ok {
		report.Unmapped++
		return nil
	}

	text := html.UnescapeString(raw.Question)
	answer := html.UnescapeString(raw.CorrectAnswer)

	dup, err := im.exists(ctx, text)
	if err != nil {
		return err
	}
	if dup {
		report.Duplicates++
		return nil
	}

	difficulty := mapDifficulty(raw.Difficulty)
	_, err = im.bank.CreateQuestion(ctx, trivia.CreateQuestionRequest{
		Question:   &text,
		Answer:     &answer,
		Category:   &categoryID,
		Difficulty: &difficulty,
	})
	if err != nil {
		if trivia.Classify(err).Kind == trivia.KindStoreFailure {
			return fmt.Errorf("store question: %w", err)
		}
		im.logger.Warn().Err(err).Str("question", text).Msg("question rejected")
		report.Rejected++
		return nil
	}
	report.Imported++
	return nil
}

func (im *Importer) exists(ctx context.Context, text string) (bool, error) {
	result, err := im.bank.SearchQuestions(ctx, trivia.SearchRequest{SearchTerm: &text})
	if err != nil {
		return false, fmt.Errorf("check duplicate: %w", err)
	}
	for _, q := range result.Questions {
		if strings.EqualFold(q.Question, text) {
			return true, nil
		}
	}
	return false, nil
}

// mapCategory matches a provider category such as "Science & Nature" or
// "Entertainment: Film" to a local category by its leading word.
func mapCategory(name string, byName map[string]int64) (int64, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := byName[key]; ok {
		return id, true
	}
	if i := strings.IndexAny(key, ":&"); i > 0 {
		if id, ok := byName[strings.TrimSpace(key[:i])]; ok {
			return id, true
		}
	}
	return 0, false
}

func mapDifficulty(d string) int {
	switch d {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
