package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/calculadora/internal/middleware"
	"github.com/deppfellow/calculadora/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (redis, when configured and enabled)
//
// It returns 200 OK if all checks pass and 503 Service Unavailable otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// ---------------- Redis connectivity check -------------------------------
	if h.server.Redis != nil && h.server.Config.Observability.HasCheck("redis") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       "redis",
				"operation":        "health_check",
				"error_type":       "redis_unhealthy",
				"response_time_ms": time.Since(redisStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check passed")
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthCheckError sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
