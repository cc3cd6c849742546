package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/calculadora/internal/server"
	"github.com/deppfellow/calculadora/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI and the OpenAPI document.
//
// The UI is a static HTML page that loads its JS from a CDN and reads
// /openapi.json. Both files are embedded in the binary.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  static.FS,
	}
}

// ServeOpenAPIUI serves openapi.html.
//
// Cache-Control is set to "no-cache" so clients do not reuse old docs UI.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(h.assets, static.OpenAPIUIFile)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ServeOpenAPISpec serves openapi.json.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	specBytes, err := fs.ReadFile(h.assets, static.OpenAPISpecFile)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI document: %w", err)
	}

	return c.JSONBlob(http.StatusOK, specBytes)
}
