package trivia

import "context"

// QuestionStore persists questions. Mutations must be atomic: on error
// nothing is applied. Implementations return ErrRecordNotFound for a missing
// row and ErrUnknownCategory when an insert references no category.
type QuestionStore interface {
	// ListQuestions returns every question ordered by id.
	ListQuestions(ctx context.Context) ([]Question, error)
	CreateQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion removes id and returns the remaining questions ordered by id.
	DeleteQuestion(ctx context.Context, id int64) ([]Question, error)
}

// CategoryStore reads categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
}
