package services

import (
	"context"
	"fmt"

	"portfolio.dconn.dev/internal/models"
	"portfolio.dconn.dev/internal/store"
)

// NotFoundError reports a project id that is not in the store
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.ID)
}

// ProjectService handles project-related operations
type ProjectService struct {
	source store.Source
}

// NewProjectService creates a new ProjectService
func NewProjectService(source store.Source) *ProjectService {
	return &ProjectService{source: source}
}

// GetAll returns all projects in store order
func (s *ProjectService) GetAll(ctx context.Context) ([]models.Project, error) {
	return s.source.Load(ctx)
}

// Document returns the store document as stored, for serving unchanged
func (s *ProjectService) Document(ctx context.Context) ([]byte, error) {
	return s.source.Raw(ctx)
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, &NotFoundError{ID: id}
}
