package errors

// Error codes for standardized error responses
const (
	// Request parsing errors
	ErrCodeInvalidJSON = "invalid_json"

	// Validation errors
	ErrCodeValidationFailed    = "validation_failed"
	ErrCodeMissingField        = "missing_field"
	ErrCodeInvalidQuizCategory = "invalid_quiz_category"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeResourceNotFound = "resource_not_found"
	ErrCodeCategoryNotFound = "category_not_found"
	ErrCodeQuestionNotFound = "question_not_found"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeDataIntegrity = "data_integrity"
	ErrCodeUpstreamError = "upstream_error"
)
