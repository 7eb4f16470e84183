package middleware

import (
	"context"

	"github.com/avelune/formgate/internal/logger"
	"github.com/avelune/formgate/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UserRoleKey are the canonical echo-context keys
	// for user identity, set by the auth middleware.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer enriches each request with a request-scoped logger
// carrying request_id, method, path, ip, and — when available — New
// Relic trace ids and user identity. The logger is stored both in
// echo context and in the Go request context so non-HTTP code
// (repositories, jobs) can reach it through context.Context alone.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer from the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the echo middleware. It must run after
// RequestID and the tracing middleware to pick up their fields, and
// before the auth middleware's consumers.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template, not raw URL
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := extractString(c, UserIDKey); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}
			if userRole := extractString(c, UserRoleKey); userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger) //nolint:staticcheck // string key kept for symmetry with echo context
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func extractString(c echo.Context, key string) string {
	if value, ok := c.Get(key).(string); ok {
		return value
	}
	return ""
}

// GetUserID reads the authenticated user id from echo context, or ""
// when no auth middleware ran.
func GetUserID(c echo.Context) string {
	return extractString(c, UserIDKey)
}

// GetLogger retrieves the request-scoped logger from echo context.
// If EnhanceContext did not run it returns a no-op logger, so callers
// never need a nil check.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	nop := zerolog.Nop()
	return &nop
}
