package trivia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Operation names used in errors, logs and metrics.
const (
	opListCategories = "list_categories"
	opListQuestions  = "list_questions"
	opDeleteQuestion = "delete_question"
	opCreateQuestion = "create_question"
	opSearch         = "search_questions"
	opByCategory     = "questions_by_category"
	opNextQuestion   = "next_question"
)

// ServiceOptions tunes the service; zero values get defaults.
type ServiceOptions struct {
	PageSize     int
	StoreTimeout time.Duration
	Selector     *Selector
	Metrics      *Metrics
}

// Service runs each trivia operation as one pass: validate, query the store,
// apply the pure engine functions, classify the outcome. It keeps no state
// between calls.
type Service struct {
	questions    QuestionStore
	categories   CategoryStore
	cache        CategoryCache
	selector     *Selector
	validate     *validator.Validate
	metrics      *Metrics
	pageSize     int
	storeTimeout time.Duration
	logger       zerolog.Logger
}

// NewService wires the stores. cache may be nil to always read categories from the store.
func NewService(questions QuestionStore, categories CategoryStore, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	selector := opts.Selector
	if selector == nil {
		selector = NewSelector()
	}
	return &Service{
		questions:    questions,
		categories:   categories,
		cache:        cache,
		selector:     selector,
		validate:     newValidator(),
		metrics:      opts.Metrics,
		pageSize:     pageSize,
		storeTimeout: opts.StoreTimeout,
		logger:       logger.With().Str("component", "trivia").Logger(),
	}
}

// Categories returns all categories ordered by id.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.loadCategories(ctx, opListCategories)
	s.metrics.observe(opListCategories, err)
	return categories, err
}

// ListQuestions returns one page of all questions with the category mapping.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	questions, err := s.listQuestions(ctx, opListQuestions)
	if err != nil {
		s.metrics.observe(opListQuestions, err)
		return QuestionPage{}, err
	}
	result, err := s.buildPage(ctx, opListQuestions, questions, page)
	s.metrics.observe(opListQuestions, err)
	return result, err
}

// DeleteQuestion removes a question and returns the requested page of what remains.
func (s *Service) DeleteQuestion(ctx context.Context, id int64, page int) (QuestionPage, error) {
	result, err := s.deleteQuestion(ctx, id, page)
	s.metrics.observe(opDeleteQuestion, err)
	return result, err
}

func (s *Service) deleteQuestion(ctx context.Context, id int64, page int) (QuestionPage, error) {
	if id <= 0 {
		return QuestionPage{}, questionNotFound(id)
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	remaining, err := s.questions.DeleteQuestion(sctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return QuestionPage{}, questionNotFound(id)
		}
		return QuestionPage{}, s.storeError(ctx, opDeleteQuestion, err)
	}

	s.log(ctx).Info().Int64("question_id", id).Msg("question deleted")
	return s.buildPage(ctx, opDeleteQuestion, remaining, page)
}

// CreateQuestion validates req before touching the store, then inserts it.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	created, err := s.createQuestion(ctx, req)
	s.metrics.observe(opCreateQuestion, err)
	return created, err
}

func (s *Service) createQuestion(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	if err := s.validate.Struct(req); err != nil {
		return Question{}, validationError(opCreateQuestion, err)
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	created, err := s.questions.CreateQuestion(sctx, NewQuestion{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			return Question{}, unprocessable(opCreateQuestion, httperrors.ErrCodeValidationFailed, "category",
				fmt.Sprintf("category %d does not exist", *req.Category))
		}
		return Question{}, s.storeError(ctx, opCreateQuestion, err)
	}

	s.log(ctx).Info().Int64("question_id", created.ID).Int64("category", created.Category).Msg("question created")
	return created, nil
}

// SearchQuestions returns every question whose text contains the search term.
func (s *Service) SearchQuestions(ctx context.Context, req SearchRequest) (SearchResult, error) {
	result, err := s.searchQuestions(ctx, req)
	s.metrics.observe(opSearch, err)
	return result, err
}

func (s *Service) searchQuestions(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if err := validateSearchTerm(req.SearchTerm); err != nil {
		return SearchResult{}, err
	}
	questions, err := s.listQuestions(ctx, opSearch)
	if err != nil {
		return SearchResult{}, err
	}
	matches, err := Search(*req.SearchTerm, questions)
	if err != nil {
		return SearchResult{}, err
	}
	if err := s.checkCategories(ctx, opSearch, matches); err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Questions: matches, Total: len(matches)}, nil
}

// QuestionsByCategory returns every question of an existing category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	result, err := s.questionsByCategory(ctx, categoryID)
	s.metrics.observe(opByCategory, err)
	return result, err
}

func (s *Service) questionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	category, err := s.categories.GetCategory(sctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return CategoryQuestions{}, notFound(opByCategory, httperrors.ErrCodeCategoryNotFound,
				fmt.Sprintf("category %d does not exist", categoryID))
		}
		return CategoryQuestions{}, s.storeError(ctx, opByCategory, err)
	}

	questions, err := s.listQuestions(ctx, opByCategory)
	if err != nil {
		return CategoryQuestions{}, err
	}
	matches, category, err := ByCategory(categoryID, []Category{category}, questions)
	if err != nil {
		return CategoryQuestions{}, err
	}
	return CategoryQuestions{Questions: matches, Total: len(matches), Category: category}, nil
}

// NextQuestion draws an unseen question for the round described by req. An
// unknown category simply has nothing eligible and yields an exhausted result.
func (s *Service) NextQuestion(ctx context.Context, req QuizRequest) (QuizResult, error) {
	if err := req.validate(); err != nil {
		s.metrics.observe(opNextQuestion, err)
		return QuizResult{}, err
	}

	questions, err := s.listQuestions(ctx, opNextQuestion)
	if err != nil {
		s.metrics.observe(opNextQuestion, err)
		return QuizResult{}, err
	}

	picked, eligible := s.selector.draw(questions, req.QuizCategory.ID, req.PreviousQuestions)
	if eligible > 0 {
		if err := s.checkCategories(ctx, opNextQuestion, []Question{picked}); err != nil {
			s.metrics.observe(opNextQuestion, err)
			return QuizResult{}, err
		}
	}
	s.metrics.observeDraw(eligible)
	if eligible == 0 {
		s.log(ctx).Debug().
			Int64("category", req.QuizCategory.ID).
			Int("previous", len(req.PreviousQuestions)).
			Msg("quiz round exhausted")
		return QuizResult{Exhausted: true}, nil
	}
	return QuizResult{Question: &picked}, nil
}

// RefreshCategories reloads categories from the store into the cache.
func (s *Service) RefreshCategories(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	categories, err := s.categories.ListCategories(sctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if err := s.cache.Set(ctx, categories); err != nil {
		return fmt.Errorf("cache categories: %w", err)
	}
	return nil
}

func (s *Service) loadCategories(ctx context.Context, op string) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log(ctx).Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	categories, err := s.categories.ListCategories(sctx)
	if err != nil {
		return nil, s.storeError(ctx, op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.log(ctx).Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *Service) listQuestions(ctx context.Context, op string) ([]Question, error) {
	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	questions, err := s.questions.ListQuestions(sctx)
	if err != nil {
		return nil, s.storeError(ctx, op, err)
	}
	return questions, nil
}

// buildPage paginates questions and attaches the category mapping. A question
// pointing at a missing category is surfaced as a store failure.
func (s *Service) buildPage(ctx context.Context, op string, questions []Question, page int) (QuestionPage, error) {
	categories, err := s.loadCategories(ctx, op)
	if err != nil {
		return QuestionPage{}, err
	}
	mapping := CategoryMap(categories)
	if err := s.integrityError(ctx, op, questions, mapping); err != nil {
		return QuestionPage{}, err
	}

	if page < 1 {
		page = 1
	}
	items, total := Paginate(questions, page, s.pageSize)
	return QuestionPage{Questions: items, Total: total, Page: page, Categories: mapping}, nil
}

// checkCategories loads the category set and fails when any of questions
// points outside it. An empty listing needs no lookup.
func (s *Service) checkCategories(ctx context.Context, op string, questions []Question) error {
	if len(questions) == 0 {
		return nil
	}
	categories, err := s.loadCategories(ctx, op)
	if err != nil {
		return err
	}
	return s.integrityError(ctx, op, questions, CategoryMap(categories))
}

func (s *Service) integrityError(ctx context.Context, op string, questions []Question, mapping map[int64]string) error {
	dangling := danglingCategories(questions, mapping)
	if len(dangling) == 0 {
		return nil
	}
	s.log(ctx).Error().Str("op", op).Ints64("question_ids", dangling).Msg("questions reference missing categories")
	return &Error{
		Kind:    KindStoreFailure,
		Code:    httperrors.ErrCodeDataIntegrity,
		Message: "Stored questions reference a category that does not exist",
		Op:      op,
	}
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// storeError logs the raw cause and returns the classified error.
func (s *Service) storeError(ctx context.Context, op string, err error) error {
	s.log(ctx).Error().Err(err).Str("op", op).Msg("store failure")
	return storeFailure(op, err)
}

func (s *Service) log(ctx context.Context) *zerolog.Logger {
	logger := logging.FromContextOr(ctx, s.logger)
	return &logger
}

func questionNotFound(id int64) *Error {
	return notFound(opDeleteQuestion, httperrors.ErrCodeQuestionNotFound, fmt.Sprintf("question %d does not exist", id))
}
