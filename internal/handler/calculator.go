package handler

import (
	"net/http"

	"github.com/deppfellow/calculadora/internal/model"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/deppfellow/calculadora/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CalculatorHandler serves the four arithmetic routes.
type CalculatorHandler struct {
	Handler
	calculator *service.CalculatorService
}

// NewCalculatorHandler constructs a CalculatorHandler.
func NewCalculatorHandler(s *server.Server, calculator *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{
		Handler:    NewHandler(s),
		calculator: calculator,
	}
}

type operationFunc func(i, j float64) (float64, error)

// Add handles POST /soma.
func (h *CalculatorHandler) Add() echo.HandlerFunc {
	return Handle(h.Handler, h.operation(h.calculator.Add), http.StatusOK, &model.OperationRequest{})
}

// Subtract handles POST /subtração.
func (h *CalculatorHandler) Subtract() echo.HandlerFunc {
	return Handle(h.Handler, h.operation(h.calculator.Subtract), http.StatusOK, &model.OperationRequest{})
}

// Multiply handles POST /multiplicação.
func (h *CalculatorHandler) Multiply() echo.HandlerFunc {
	return Handle(h.Handler, h.operation(h.calculator.Multiply), http.StatusOK, &model.OperationRequest{})
}

// Divide handles POST /divisão.
//
// A zero divisor is answered with 200 and ["divisão por zero"] instead of
// an error, so the response type differs between the two outcomes.
func (h *CalculatorHandler) Divide() echo.HandlerFunc {
	divide := h.operation(h.calculator.Divide)

	return Handle(h.Handler, func(c echo.Context, req *model.OperationRequest) (any, error) {
		res, err := divide(c, req)
		if errors.Is(err, service.ErrDivisionByZero) {
			return model.NewDivisionByZeroResponse(), nil
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}, http.StatusOK, &model.OperationRequest{})
}

func (h *CalculatorHandler) operation(fn operationFunc) HandlerFunc[*model.OperationRequest, model.OperationResponse] {
	return func(c echo.Context, req *model.OperationRequest) (model.OperationResponse, error) {
		i, j := req.Operands()

		result, err := fn(i, j)
		if err != nil {
			return model.OperationResponse{}, err
		}

		return model.OperationResponse{Resultado: result}, nil
	}
}
