package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/unicode/norm"
)

// NormalizePath rewrites the request path to Unicode NFC before routing.
//
// The arithmetic routes contain non-ASCII characters (/subtração, ...).
// Clients may send them decomposed (NFD, "c" + U+0327) or percent-encoded
// with lowercase hex, which would otherwise miss the registered routes:
// Echo routes on URL.RawPath whenever it is set. Register it with e.Pre.
func NormalizePath() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := c.Request().URL

			u.Path = norm.NFC.String(u.Path)
			u.RawPath = ""

			return next(c)
		}
	}
}
