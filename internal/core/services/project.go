package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

var projectCode = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ProjectService manages projects.
type ProjectService struct {
	store driven.ProjectStore
	now   func() time.Time
}

// NewProjectService creates a new project service.
func NewProjectService(store driven.ProjectStore) *ProjectService {
	return &ProjectService{store: store, now: time.Now}
}

// Add creates a project. Codes are lower-case slugs and unique.
func (s *ProjectService) Add(ctx context.Context, code, name string) (*domain.Project, error) {
	code = strings.TrimSpace(code)
	if !projectCode.MatchString(code) {
		return nil, fmt.Errorf("%w: project code %q must be a lower-case slug", domain.ErrInvalidInput, code)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = code
	}

	project := domain.Project{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	return &project, nil
}

// Resolve finds a project by ID, then by code.
func (s *ProjectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	project, err := s.store.Get(ctx, ref)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get project: %w", err)
	}

	project, err = s.store.GetByCode(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", ref, err)
	}
	return project, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.store.List(ctx)
}
