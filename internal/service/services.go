package service

import (
	"github.com/avelune/formgate/internal/lib/job"
	"github.com/avelune/formgate/internal/repository"
	"github.com/avelune/formgate/internal/server"
)

// Services is a container for all business-layer services.
type Services struct {
	Form *FormService
	Job  *job.JobService
}

// NewServices constructs the service container, wiring repositories
// and the job service into the services that need them.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	formService := NewFormService(s, repos.Form, s.Job)

	return &Services{
		Form: formService,
		Job:  s.Job,
	}, nil
}
