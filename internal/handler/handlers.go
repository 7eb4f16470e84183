package handler

import (
	"github.com/avelune/formgate/internal/server"
	"github.com/avelune/formgate/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup passes one object around instead of many.
type Handlers struct {
	Form    *FormHandler    // Form serves the public submit endpoint and admin CRUD.
	Health  *HealthHandler  // Health serves service health endpoints.
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation.
}

// NewHandlers constructs the handler container from the application
// container and the business layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Form:    NewFormHandler(s, services),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
