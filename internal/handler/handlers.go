package handler

import (
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/deppfellow/calculadora/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives a single value.
type Handlers struct {
	Calculator *CalculatorHandler // Calculator serves the arithmetic routes.
	Health     *HealthHandler     // Health serves GET /status.
	OpenAPI    *OpenAPIHandler    // OpenAPI serves the API docs UI and document.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Calculator: NewCalculatorHandler(s, services.Calculator),
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
