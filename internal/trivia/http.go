package trivia

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

const defaultMaxBodyBytes = 1 << 20

// HTTPHandlers provides REST endpoints for the question bank.
type HTTPHandlers struct {
	service      *Service
	maxBodyBytes int64
	upgrader     *websocket.Upgrader
	logger       zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for trivia endpoints.
func NewHTTPHandlers(service *Service, maxBodyBytes int64, logger zerolog.Logger) *HTTPHandlers {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPHandlers{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		upgrader:     ws.NewUpgrader(nil),
		logger:       logger.With().Str("component", "trivia_http").Logger(),
	}
}

// AllowOrigins sets the cross-site origins accepted on /ws/quizzes.
func (h *HTTPHandlers) AllowOrigins(origins []string) *HTTPHandlers {
	h.upgrader = ws.NewUpgrader(origins)
	return h
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": CategoryMap(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"page":             result.Page,
		"categories":       result.Categories,
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, "Question not found")
		return
	}

	result, err := h.service.DeleteQuestion(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"questions":       result.Questions,
		"total_questions": result.Total,
		"page":            result.Page,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := DecodeJSON(http.MaxBytesReader(w, r.Body, h.maxBodyBytes), &req); err != nil {
		h.respondFailure(w, r, err)
		return
	}

	created, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"created": created.ID,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := DecodeJSON(http.MaxBytesReader(w, r.Body, h.maxBodyBytes), &req); err != nil {
		h.respondFailure(w, r, err)
		return
	}

	result, err := h.service.SearchQuestions(r.Context(), req)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": nil,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeCategoryNotFound, "Category not found")
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.Category.Type,
	})
}

// NextQuestion handles POST /quizzes
func (h *HTTPHandlers) NextQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := DecodeJSON(http.MaxBytesReader(w, r.Body, h.maxBodyBytes), &req); err != nil {
		h.respondFailure(w, r, err)
		return
	}

	result, err := h.service.NextQuestion(r.Context(), req)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"question":  result.Question,
		"exhausted": result.Exhausted,
	})
}

// pageParam reads ?page, falling back to the first page on absent or bad input.
func pageParam(r *http.Request) int {
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 1
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

// respondFailure renders a classified error. Only the public message is
// written; the underlying cause stays in the logs.
func (h *HTTPHandlers) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	classified := Classify(err)
	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Debug().Err(err).Str("kind", classified.Kind.String()).Msg("request failed")

	switch classified.Kind {
	case KindUnprocessable:
		httperrors.RespondValidationError(w, classified.Code, classified.Message, classified.Field)
	case KindNotFound:
		httperrors.RespondNotFound(w, classified.Code, classified.Message)
	case KindBadRequest:
		httperrors.RespondBadRequest(w, classified.Code, classified.Message)
	default:
		httperrors.RespondError(w, classified.Kind.HTTPStatus(), classified.Code, classified.Message)
	}
}
