package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Kind is the outcome class every failed operation is mapped to.
type Kind int

const (
	// KindUnprocessable: input present but structurally or semantically invalid.
	KindUnprocessable Kind = iota + 1
	// KindNotFound: a referenced category or question does not exist.
	KindNotFound
	// KindBadRequest: the body could not be parsed at all.
	KindBadRequest
	// KindStoreFailure: the backing store failed unexpectedly.
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnprocessable:
		return "unprocessable"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

// HTTPStatus returns the status code surfaced for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels returned by store adapters.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownCategory = errors.New("category does not exist")
)

// storeFailureMessage is the only text a caller ever sees for store errors.
const storeFailureMessage = "The request could not be completed due to a storage error"

// Error is a classified failure. Err is kept for logging and never rendered.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Op != "" {
		return e.Op + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func unprocessable(op, code, field, message string) *Error {
	return &Error{Kind: KindUnprocessable, Code: code, Field: field, Message: message, Op: op}
}

func notFound(op, code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Op: op}
}

func badRequest(op, message string, err error) *Error {
	return &Error{Kind: KindBadRequest, Code: httperrors.ErrCodeInvalidJSON, Message: message, Op: op, Err: err}
}

func storeFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Code: httperrors.ErrCodeInternalError, Message: storeFailureMessage, Op: op, Err: err}
}

// Classify maps any error onto exactly one Kind. Unrecognized errors are
// treated as store failures so their text never leaves the service.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Code: httperrors.ErrCodeNotFound, Message: "The requested resource was not found", Err: err}
	case errors.Is(err, ErrUnknownCategory):
		return &Error{Kind: KindUnprocessable, Code: httperrors.ErrCodeValidationFailed, Field: "category", Message: "category does not exist", Err: err}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return badRequest("", "Request body is not valid JSON", err)
	case errors.As(err, &typeErr):
		return &Error{Kind: KindUnprocessable, Code: httperrors.ErrCodeValidationFailed, Field: typeErr.Field, Message: fmt.Sprintf("%s has the wrong type", typeErr.Field), Err: err}
	default:
		return storeFailure("", err)
	}
}
