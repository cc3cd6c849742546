// Package errs defines the error shapes returned to API clients.
//
// Every failure the service reports (validation, rate limiting, unknown
// routes, arithmetic overflow, panics) is rendered as one JSON object:
//
//	{
//	  "code": "UNPROCESSABLE_ENTITY",
//	  "message": "Validation failed",
//	  "status": 422,
//	  "override": true,
//	  "errors": [{ "field": "i", "error": "is required" }]
//	}
//
// so clients only ever have to parse a single error format.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "j", "error": "must be a valid number" }
type FieldError struct {
	// Field is the JSON key the error relates to (e.g. "i").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON by the global error handler.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: tells clients the message is safe to show as-is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// Printing or logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status. errors.Is(err, &HTTPError{}) answers
// "is this an API error at all?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Unprocessable Entity" -> "UNPROCESSABLE_ENTITY"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
