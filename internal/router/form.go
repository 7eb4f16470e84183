package router

import (
	"net/http"

	"github.com/avelune/formgate/internal/handler"
	"github.com/avelune/formgate/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerFormRoutes registers the public submission endpoint and the
// authenticated admin surface over stored form entries.
func registerFormRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	v1 := r.Group("/v1")

	// Public: landing pages post here. Rate limited per client IP.
	v1.POST("/forms",
		handler.Handle(h.Form.Handler, h.Form.Submit, http.StatusCreated,
			func() *handler.SubmitFormRequest { return &handler.SubmitFormRequest{} }),
		mw.RateLimit.LimitSubmit(),
	)

	// Admin: requires a Clerk bearer token.
	admin := v1.Group("/admin", mw.Auth.RequireAuth)

	admin.GET("/forms",
		handler.Handle(h.Form.Handler, h.Form.List, http.StatusOK,
			func() *handler.ListFormEntriesRequest { return &handler.ListFormEntriesRequest{} }))

	admin.GET("/forms/export",
		handler.HandleFile(h.Form.Handler, h.Form.Export, http.StatusOK,
			func() *handler.ListFormEntriesRequest { return &handler.ListFormEntriesRequest{} },
			"form_entries.csv", "text/csv"))

	admin.GET("/forms/:id",
		handler.Handle(h.Form.Handler, h.Form.Get, http.StatusOK,
			func() *handler.GetFormEntryRequest { return &handler.GetFormEntryRequest{} }))

	admin.DELETE("/forms/:id",
		handler.HandleNoContent(h.Form.Handler, h.Form.Delete, http.StatusNoContent,
			func() *handler.DeleteFormEntryRequest { return &handler.DeleteFormEntryRequest{} }))
}
