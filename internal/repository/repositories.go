package repository

import (
	"github.com/avelune/formgate/internal/server"
)

// Repositories is a container for all repository instances, so the
// service layer takes one dependency instead of many.
type Repositories struct {
	Form *FormRepository
}

// NewRepositories constructs the repository container from the
// application container (the pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Form: NewFormRepository(s.DB.Pool),
	}
}
