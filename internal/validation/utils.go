// Package validation binds request bodies and validates them.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and turns both binding failures (malformed JSON, non-object bodies) and
// validation failures into one field-level error format the client can
// understand.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/calculadora/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that runs validator.Struct(req)
type Validatable interface {
	Validate() error
}

// ValidationFailedMessage is the message of every 422 produced here.
const ValidationFailedMessage = "Validation failed"

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. A request without Content-Type is treated as JSON.
//  2. c.Bind(payload) decodes the body.
//  3. payload.Validate() applies the struct rules.
//  4. Any field error yields *errs.HTTPError (422) listing every offending field.
//
// Malformed JSON and non-object bodies are a 422; unsupported media types
// and oversized bodies keep their Echo status (415/413).
//
// payload must be a pointer so c.Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	req := c.Request()
	if req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewUnprocessableEntityError(ValidationFailedMessage, true, nil, extractValidationError(err))
	}

	return nil
}

// bindError maps a c.Bind failure to the error returned to the client.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		message := "has an invalid type"

		// An empty field means the body itself had the wrong type (e.g. an array).
		if field == "" {
			field = "body"
			message = "must be a JSON object"
		}

		return errs.NewUnprocessableEntityError(ValidationFailedMessage, true, nil, []errs.FieldError{{
			Field: field,
			Error: message,
		}})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
			return err
		}

		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return errs.NewUnprocessableEntityError(
				fmt.Sprintf("Malformed JSON body at offset %d", syntaxErr.Offset), true, nil, nil)
		}
	}

	return errs.NewUnprocessableEntityError("Malformed request body", true, nil, nil)
}

func extractValidationError(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "finite":
			msg = "must be a valid number"

		default:
			msg = fmt.Sprintf("%s: %s", field, err.Tag())
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
