package middleware

import (
	"net/http"

	"github.com/deppfellow/calculadora/internal/errs"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler,
// which all need access to config and logging from *server.Server.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server.cors_allowed_origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
}

// BodyLimit rejects request bodies larger than server.body_limit with 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Server.BodyLimit)
}

// RequestLogger returns Echo's request logger middleware writing one "API"
// log line per request through the request-scoped zerolog logger.
//
// Severity follows the final status: 5xx error, 4xx warn, otherwise info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// When a handler returns an error the response has not been written
			// yet: GlobalErrorHandler runs after the whole chain. Derive the
			// status it is going to use instead of logging 200.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := StatusFromError(v.Error, v.Status)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware. Panics become errors
// and therefore 500 responses through GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			panicRecoveries.Inc()

			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("panic recovered")

			return err
		},
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// StatusFromError returns the status GlobalErrorHandler will answer err
// with, or fallback when err is nil.
func StatusFromError(err error, fallback int) int {
	if err == nil {
		return fallback
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// rendered as an errs.HTTPError JSON body:
//   - *errs.HTTPError is written as-is
//   - *echo.HTTPError keeps its status (404 gets a friendlier message)
//   - anything else becomes a generic 500
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Logs keep the real underlying error even when the client gets a sanitized one.
	originalErr := err

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if status == http.StatusNotFound {
			message = "Route not found"
		} else if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}

	default:
		internal := errs.NewInternalServerError()
		status = internal.Status
		code = internal.Code
		message = internal.Message
	}

	logger := GetLogger(c)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}

	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if c.Response().Committed {
		return
	}

	// HEAD responses must not carry a body.
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	_ = c.JSON(status, errs.HTTPError{
		Code:     code,
		Message:  message,
		Status:   status,
		Override: httpErr != nil && httpErr.Override,
		Errors:   fieldErrors,
	})
}
