package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const pgForeignKeyViolation = "23503"

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
	GetCategory(ctx context.Context, id int64) (queries.Category, error)
}

// QuestionRepository implements trivia.QuestionStore on Postgres.
type QuestionRepository struct {
	store questionStore
	tx    txRunner
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore, tx txRunner) *QuestionRepository {
	return &QuestionRepository{store: store, tx: tx}
}

// ListQuestions returns every question ordered by id.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toQuestions(rows), nil
}

// CreateQuestion checks the category and inserts in one transaction.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	var created queries.Question
	err := r.tx.InTx(ctx, func(store questionStore) error {
		if _, err := store.GetCategory(ctx, q.Category); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return trivia.ErrUnknownCategory
			}
			return fmt.Errorf("get category: %w", err)
		}

		row, err := store.InsertQuestion(ctx, queries.InsertQuestionParams{
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   q.Category,
			Difficulty: int32(q.Difficulty),
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return trivia.ErrUnknownCategory
			}
			return fmt.Errorf("insert question: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return trivia.Question{}, err
	}
	return toQuestion(created), nil
}

// DeleteQuestion removes id and reads back the remaining rows in the same
// transaction. A missing id rolls back and returns trivia.ErrRecordNotFound.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) ([]trivia.Question, error) {
	var remaining []queries.Question
	err := r.tx.InTx(ctx, func(store questionStore) error {
		n, err := store.DeleteQuestion(ctx, id)
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if n == 0 {
			return trivia.ErrRecordNotFound
		}

		remaining, err = store.ListQuestions(ctx)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toQuestions(remaining), nil
}

func toQuestion(row queries.Question) trivia.Question {
	return trivia.Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toQuestions(rows []queries.Question) []trivia.Question {
	out := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}
