package router

import (
	"github.com/deppfellow/calculadora/internal/handler"
	"github.com/deppfellow/calculadora/static"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers endpoints that are not part of the
// arithmetic API: health, metrics and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)

	// openapi.json and openapi.html, plus any future docs assets.
	r.StaticFS("/static", static.FS)
}
