package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelune/formgate/internal/middleware"
	"github.com/avelune/formgate/internal/validation"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = middleware.GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.True(t, validation.IsValidUUID(seen))
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = middleware.GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id-123", seen)
	assert.Equal(t, "upstream-id-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestGetRequestID_NoMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "", middleware.GetRequestID(c))
}

func TestGetLogger_NoMiddlewareReturnsNop(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	logger := middleware.GetLogger(c)

	require.NotNil(t, logger)
	// Must be safe to use without any setup.
	logger.Info().Msg("ignored")
}
