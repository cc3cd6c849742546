// Package static embeds the API documentation assets served under /docs,
// /openapi.json and /static/*.
package static

import "embed"

// FS holds openapi.html and openapi.json.
//
//go:embed openapi.html openapi.json
var FS embed.FS

const (
	OpenAPIUIFile   = "openapi.html"
	OpenAPISpecFile = "openapi.json"
)
