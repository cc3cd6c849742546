// Package model holds the request and response payloads of the HTTP API.
package model

import (
	"github.com/go-playground/validator/v10"
)

// DivisionByZeroMessage is the only element of the division-by-zero payload.
const DivisionByZeroMessage = "divisão por zero"

// validate is shared by every payload; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

// OperationRequest is the body accepted by every arithmetic route:
//
//	{"i": 10, "j": 4}
//
// The operands are pointers so that a missing (or null) operand can be told
// apart from an explicit 0.
type OperationRequest struct {
	I *Operand `json:"i" validate:"required,finite"`
	J *Operand `json:"j" validate:"required,finite"`
}

// Validate implements validation.Validatable.
func (r *OperationRequest) Validate() error {
	return validate.Struct(r)
}

// Operands returns both operands. Only call it after Validate succeeded.
func (r *OperationRequest) Operands() (float64, float64) {
	return r.I.Float64(), r.J.Float64()
}

// OperationResponse is the success body of every arithmetic route.
type OperationResponse struct {
	Resultado float64 `json:"resultado"`
}

// DivisionByZeroResponse is returned with HTTP 200 when j is zero.
// It serializes as a single-element JSON array: ["divisão por zero"].
type DivisionByZeroResponse []string

// NewDivisionByZeroResponse builds the division-by-zero payload.
func NewDivisionByZeroResponse() DivisionByZeroResponse {
	return DivisionByZeroResponse{DivisionByZeroMessage}
}
