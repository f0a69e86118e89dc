package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/americano/projectsync-web/internal/projects/domain"
)

// Backend is the projects REST API as seen by the service.
type Backend interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectService applies input normalization and the duplicate-action guard
// in front of the backend.
type ProjectService struct {
	backend  Backend
	inflight *Guard
}

// NewProjectService creates a new project service
func NewProjectService(backend Backend) *ProjectService {
	return &ProjectService{
		backend:  backend,
		inflight: NewGuard(),
	}
}

// List returns every project, fresh from the backend.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.backend.List(ctx)
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	if id <= 0 {
		return nil, domain.ErrMissingID
	}
	return s.backend.Get(ctx, id)
}

// Create normalizes the names, forces the initial status and submits.
func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	in = in.Normalized()
	in.Status = domain.StatusActive
	return s.backend.Create(ctx, in)
}

// Update normalizes the names the same way Create does and submits.
// A blank status is rejected before any request is sent.
func (s *ProjectService) Update(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error) {
	if id <= 0 {
		return nil, domain.ErrMissingID
	}
	in = in.Normalized()
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		return nil, &domain.FieldError{Field: "status", Message: "Status must not be empty."}
	}

	release, ok := s.inflight.Acquire(fmt.Sprintf("update:%d", id))
	if !ok {
		return nil, domain.ErrInFlight
	}
	defer release()

	return s.backend.Update(ctx, id, in)
}

// Delete removes a project. A second delete of the same id while the first
// is still running fails with ErrInFlight.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrMissingID
	}

	release, ok := s.inflight.Acquire(fmt.Sprintf("delete:%d", id))
	if !ok {
		return domain.ErrInFlight
	}
	defer release()

	return s.backend.Delete(ctx, id)
}
