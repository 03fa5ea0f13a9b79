package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// CreateQuestionRequest is the body of a create call. Pointer fields tell a
// missing key apart from a zero value.
type CreateQuestionRequest struct {
	Question   *string `json:"question" validate:"required,min=1"`
	Answer     *string `json:"answer" validate:"required,min=1"`
	Category   *int64  `json:"category" validate:"required,gt=0"`
	Difficulty *int    `json:"difficulty" validate:"required,min=1,max=5"`
}

// SearchRequest is the body of a search call.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// QuizRequest asks for the next question of a quiz round.
type QuizRequest struct {
	QuizCategory      CategorySelector `json:"quiz_category"`
	PreviousQuestions []int64          `json:"previous_questions"`
}

// CategorySelector is either {"id": n} or the string "all". An id of 0 also
// means every category.
type CategorySelector struct {
	ID  int64
	set bool
}

// SelectCategory builds a selector for id; use AllCategories for every category.
func SelectCategory(id int64) CategorySelector {
	return CategorySelector{ID: id, set: true}
}

// Valid reports whether the selector was supplied.
func (c CategorySelector) Valid() bool { return c.set }

// UnmarshalJSON implements json.Unmarshaler.
func (c *CategorySelector) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if strings.EqualFold(sentinel, "all") {
			*c = SelectCategory(AllCategories)
			return nil
		}
		return invalidSelector(`quiz_category must be an object with an id or "all"`)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return invalidSelector(`quiz_category must be an object with an id or "all"`)
	}
	raw, ok := fields["id"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return invalidSelector("quiz_category.id is required")
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return invalidSelector("quiz_category.id must be an integer")
	}
	if id < 0 {
		return invalidSelector("quiz_category.id must not be negative")
	}
	*c = SelectCategory(id)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c CategorySelector) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]int64{"id": c.ID})
}

func invalidSelector(message string) *Error {
	return unprocessable("next_question", httperrors.ErrCodeInvalidQuizCategory, "quiz_category", message)
}

func (r QuizRequest) validate() error {
	if !r.QuizCategory.Valid() {
		return invalidSelector("quiz_category is required")
	}
	return nil
}

func validateSearchTerm(term *string) error {
	if term == nil || *term == "" {
		return unprocessable("search", httperrors.ErrCodeMissingField, "searchTerm", "searchTerm is required")
	}
	return nil
}

// DecodeJSON reads one JSON document from r into dst and classifies failures:
// unparseable input is a bad request, a mistyped field is unprocessable.
func DecodeJSON(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		var (
			classified *Error
			typeErr    *json.UnmarshalTypeError
			tooLarge   *http.MaxBytesError
		)
		switch {
		case errors.As(err, &classified):
			return classified
		case errors.As(err, &typeErr):
			return unprocessable("decode", httperrors.ErrCodeValidationFailed, typeErr.Field,
				fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
		case errors.As(err, &tooLarge):
			return badRequest("decode", "Request body is too large", err)
		default:
			return badRequest("decode", "Request body is not valid JSON", err)
		}
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts the first validator failure into an unprocessable error.
func validationError(op string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return unprocessable(op, httperrors.ErrCodeValidationFailed, "", err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return unprocessable(op, httperrors.ErrCodeMissingField, field, field+" is required")
	case "min":
		if fe.Kind() == reflect.String {
			return unprocessable(op, httperrors.ErrCodeValidationFailed, field, field+" must not be empty")
		}
		return unprocessable(op, httperrors.ErrCodeValidationFailed, field, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	case "max":
		return unprocessable(op, httperrors.ErrCodeValidationFailed, field, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
	case "gt":
		return unprocessable(op, httperrors.ErrCodeValidationFailed, field, field+" must be a positive integer")
	default:
		return unprocessable(op, httperrors.ErrCodeValidationFailed, field, field+" is invalid")
	}
}
