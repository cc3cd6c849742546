package service

import (
	"errors"
	"math"

	"github.com/deppfellow/calculadora/internal/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names one of the four arithmetic operations. The value is the
// Portuguese route name it is served under.
type Operation string

const (
	OperationAdd      Operation = "soma"
	OperationSubtract Operation = "subtração"
	OperationMultiply Operation = "multiplicação"
	OperationDivide   Operation = "divisão"
)

// ErrDivisionByZero is returned by Divide when the divisor is zero (or -0).
// It is not a failure from the client's point of view: the handler answers
// with the division-by-zero payload and HTTP 200.
var ErrDivisionByZero = errors.New("divisão por zero")

// ErrUnknownOperation is returned by Calculate for an operation it does not know.
var ErrUnknownOperation = errors.New("unknown operation")

var resultNotFiniteCode = "RESULT_NOT_FINITE"

// Operation outcomes recorded in calculator_operations_total.
const (
	outcomeOK             = "ok"
	outcomeDivisionByZero = "division_by_zero"
	outcomeNotFinite      = "not_finite"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculator_operations_total",
		Help: "Total number of arithmetic operations computed, by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// CalculatorService performs the arithmetic behind the four routes.
// It is stateless and safe for concurrent use.
type CalculatorService struct{}

// NewCalculatorService constructs a CalculatorService.
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// Add returns i + j.
func (cs *CalculatorService) Add(i, j float64) (float64, error) {
	return cs.Calculate(OperationAdd, i, j)
}

// Subtract returns i - j.
func (cs *CalculatorService) Subtract(i, j float64) (float64, error) {
	return cs.Calculate(OperationSubtract, i, j)
}

// Multiply returns i * j.
func (cs *CalculatorService) Multiply(i, j float64) (float64, error) {
	return cs.Calculate(OperationMultiply, i, j)
}

// Divide returns i / j, or ErrDivisionByZero when j == 0.
func (cs *CalculatorService) Divide(i, j float64) (float64, error) {
	return cs.Calculate(OperationDivide, i, j)
}

// Calculate applies op to i and j.
//
// Results that overflow float64 (±Inf) cannot be written as JSON numbers,
// so they are reported as a 422 *errs.HTTPError with code RESULT_NOT_FINITE.
func (cs *CalculatorService) Calculate(op Operation, i, j float64) (float64, error) {
	var result float64

	switch op {
	case OperationAdd:
		result = i + j
	case OperationSubtract:
		result = i - j
	case OperationMultiply:
		result = i * j
	case OperationDivide:
		if j == 0 {
			operationsTotal.WithLabelValues(string(op), outcomeDivisionByZero).Inc()
			return 0, ErrDivisionByZero
		}
		result = i / j
	default:
		return 0, ErrUnknownOperation
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		operationsTotal.WithLabelValues(string(op), outcomeNotFinite).Inc()
		return 0, errs.NewUnprocessableEntityError("Result is not a finite number", true, &resultNotFiniteCode, nil)
	}

	operationsTotal.WithLabelValues(string(op), outcomeOK).Inc()

	return result, nil
}
