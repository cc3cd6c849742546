package errs

import (
	"net/http"
)

// codeFor returns the default machine code for an HTTP status,
// e.g. 429 => "TOO_MANY_REQUESTS".
func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := codeFor(http.StatusBadRequest)

	// If caller supplies custom code pointer, use it as-is.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := codeFor(http.StatusNotFound)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// This is the status used for request payloads that are well-formed HTTP but
// do not satisfy the operation schema (missing operands, strings instead of
// numbers, ...), and for results that cannot be represented in JSON.
func NewUnprocessableEntityError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := codeFor(http.StatusUnprocessableEntity)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: override,
		Errors:   errors,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     codeFor(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     codeFor(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
