package router

import (
	"github.com/deppfellow/calculadora/internal/handler"
	"github.com/deppfellow/calculadora/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerCalculatorRoutes registers the four arithmetic routes behind the
// rate limiter. The paths are NFC; NormalizePath brings requests to NFC too.
func registerCalculatorRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	limit := m.RateLimit.Limit()

	r.POST("/soma", h.Calculator.Add(), limit)
	r.POST("/subtração", h.Calculator.Subtract(), limit)
	r.POST("/multiplicação", h.Calculator.Multiply(), limit)
	r.POST("/divisão", h.Calculator.Divide(), limit)
}
