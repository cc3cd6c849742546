// Package service contains the business logic.
//
// It sits behind the handler layer: it receives validated operands from the
// handlers and performs the arithmetic.
package service

// Services is a container for all service instances.
type Services struct {
	Calculator *CalculatorService
}

// NewServices constructs the service container.
func NewServices() *Services {
	return &Services{
		Calculator: NewCalculatorService(),
	}
}
