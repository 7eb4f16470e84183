// Package router initializes the HTTP router (using echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/avelune/formgate/internal/handler"
	"github.com/avelune/formgate/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the echo instance: global middleware in dependency
// order (request id before the context enhancer, tracing before both
// enhancer and logger so trace ids are available), the global error
// handler, then all route groups.
func New(h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	r.Use(mw.Global.Recover())
	r.Use(mw.Global.Secure())
	r.Use(mw.Global.CORS())
	r.Use(middleware.RequestID())
	r.Use(mw.Tracing.NewRelicMiddleware())
	r.Use(mw.ContextEnhancer.EnhanceContext())
	r.Use(mw.Tracing.EnhanceTracing())
	r.Use(mw.Global.RequestLogger())

	registerSystemRoutes(r, h)
	registerFormRoutes(r, h, mw)

	return r
}
