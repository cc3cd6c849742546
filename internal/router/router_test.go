package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/calculadora/internal/config"
	"github.com/deppfellow/calculadora/internal/errs"
	"github.com/deppfellow/calculadora/internal/handler"
	"github.com/deppfellow/calculadora/internal/middleware"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/deppfellow/calculadora/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	return NewRouter(s, handler.NewHandlers(s, service.NewServices()))
}

func do(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestArithmeticRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name     string
		target   string
		body     string
		expected string
	}{
		{"soma", "/soma", `{"i": 2, "j": 3}`, `{"resultado": 5}`},
		{"subtração", "/subtração", `{"i": 10, "j": 4}`, `{"resultado": 6}`},
		{"multiplicação", "/multiplicação", `{"i": -2, "j": 4}`, `{"resultado": -8}`},
		{"divisão", "/divisão", `{"i": 10, "j": 4}`, `{"resultado": 2.5}`},
		{"divisão por zero", "/divisão", `{"i": 10, "j": 0}`, `["divisão por zero"]`},
		{"numeric strings", "/soma", `{"i": "2", "j": "3"}`, `{"resultado": 5}`},
		{"numeric string divisor zero", "/divisão", `{"i": 1, "j": "0"}`, `["divisão por zero"]`},
		{"percent-encoded path", "/divis%C3%A3o", `{"i": 9, "j": 3}`, `{"resultado": 3}`},
		{"lowercase percent-encoded path", "/multiplica%c3%a7%c3%a3o", `{"i": 3, "j": 3}`, `{"resultado": 9}`},
		{"decomposed path", "/subtrac\u0327a\u0303o", `{"i": 1, "j": 1}`, `{"resultado": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, tt.target, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestArithmeticRoutes_WithoutContentType(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/soma", strings.NewReader(`{"i": 1, "j": 1}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"resultado": 2}`, rec.Body.String())
}

func TestArithmeticRoutes_ValidationError(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, target := range []string{"/soma", "/subtração", "/multiplicação", "/divisão"} {
		t.Run(target, func(t *testing.T) {
			rec := do(r, http.MethodPost, target, `{"i": "dois", "j": 3}`)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, "UNPROCESSABLE_ENTITY", body.Code)
			require.Len(t, body.Errors, 1)
			assert.Equal(t, "i", body.Errors[0].Field)
		})
	}
}

func TestArithmeticRoutes_EveryInvalidFieldReported(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodPost, "/soma", `{"i": "dois", "j": "tres"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeError(t, rec)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "i", Error: "must be a valid number"},
		{Field: "j", Error: "must be a valid number"},
	}, body.Errors)
}

func TestArithmeticRoutes_ClientErrors(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.BodyLimit = "64B"
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/soma", `{"i": 1,`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/soma", strings.NewReader(`i=1&j=2`))
		req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/soma", `{"i": 1, "j": 2, "padding": "`+strings.Repeat("x", 128)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/soma", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
	})

	t.Run("route not found", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/potencia", `{"i": 2, "j": 3}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, "NOT_FOUND", body.Code)
		assert.Equal(t, "Route not found", body.Message)
	})
}

func TestArithmeticRoutes_RateLimited(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 1
	})

	first := do(r, http.MethodPost, "/soma", `{"i": 1, "j": 1}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(r, http.MethodPost, "/soma", `{"i": 1, "j": 1}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, second).Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// System routes are not limited.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/status", "").Code)
}

func postFrom(r *echo.Echo, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/soma", strings.NewReader(`{"i": 1, "j": 1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	req.RemoteAddr = remoteAddr

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestArithmeticRoutes_RateLimitIgnoresForwardedFor(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 1
	})

	rejected := 0
	for n := range 20 {
		if postFrom(r, "203.0.113.7:40000", fmt.Sprintf("198.51.100.%d", n+1)) == http.StatusTooManyRequests {
			rejected++
		}
	}

	assert.Equal(t, 19, rejected)
}

func TestArithmeticRoutes_RateLimitBehindTrustedProxy(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.TrustedProxies = []string{"10.0.0.0/8"}
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 1
	})

	// Distinct clients behind the proxy get their own budget.
	assert.Equal(t, http.StatusOK, postFrom(r, "10.1.2.3:40000", "198.51.100.1"))
	assert.Equal(t, http.StatusOK, postFrom(r, "10.1.2.3:40000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "10.1.2.3:40000", "198.51.100.1"))

	// An untrusted peer cannot choose its identity.
	assert.Equal(t, http.StatusOK, postFrom(r, "203.0.113.7:40000", "198.51.100.3"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "203.0.113.7:40000", "198.51.100.4"))
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("status", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/status", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"healthy"`)
	})

	t.Run("metrics", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/soma", `{"i": 2, "j": 3}`).Code)

		rec := do(r, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "calculator_operations_total")
		assert.Contains(t, rec.Body.String(), "calculadora_http_requests_total")
	})

	t.Run("docs", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/docs", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/openapi.json", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"/soma"`)
	})

	t.Run("static assets", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/static/openapi.json", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
