package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/avelune/formgate/internal/middleware"
	"github.com/avelune/formgate/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a system endpoint external systems use to
// verify the service is alive and its dependencies are reachable
// (Kubernetes probes, uptime monitors, load balancers).
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns overall status plus per-dependency checks for
// the database and Redis.
//
// Database failure makes the service unhealthy (503). Redis failure
// is reported but does not flip overall health: submissions still
// persist without the notification queue.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checkTimeout := 5 * time.Second
	if hc := h.server.Config.Observability.HealthChecks; hc.Timeout > 0 {
		checkTimeout = hc.Timeout
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}
	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// Database connectivity.
	{
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		dbStart := time.Now()
		err := h.server.DB.Pool.Ping(ctx)
		cancel()

		if err != nil {
			checks["database"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}
			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthCheckError("database", "database_unhealthy", time.Since(dbStart), err)
		} else {
			checks["database"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}
		}
	}

	// Redis connectivity.
	if h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		redisStart := time.Now()
		err := h.server.Redis.Ping(ctx).Err()
		cancel()

		if err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthCheckError("redis", "redis_unhealthy", time.Since(redisStart), err)
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError("overall", "overall_unhealthy", time.Since(start), nil)

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// recordHealthCheckError emits a New Relic custom event for a failed
// check. No-op when APM is off.
func (h *HealthHandler) recordHealthCheckError(checkType, errorType string, duration time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	attrs := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": duration.Milliseconds(),
	}
	if err != nil {
		attrs["error_message"] = err.Error()
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
