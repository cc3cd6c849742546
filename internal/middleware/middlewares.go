package middleware

import (
	"github.com/deppfellow/calculadora/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server,
// built once from the application container and reused during router setup.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, body
	// limit and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware. It degrades to a no-op when
	// New Relic is not configured.
	Tracing *TracingMiddleware

	// RateLimit throttles the arithmetic routes per client IP.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
