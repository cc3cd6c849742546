// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/deppfellow/calculadora/internal/handler"
	"github.com/deppfellow/calculadora/internal/middleware"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with every middleware and route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.IPExtractor = middleware.IPExtractor(s.Config.Server.TrustedProxies)

	// Runs before routing so decomposed or oddly escaped paths still match.
	router.Pre(middleware.NormalizePath())

	// Order matters: request id first, then tracing, then the context logger
	// that reads both.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middleware.Metrics(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerCalculatorRoutes(router, h, middlewares)

	return router
}
