package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages source configurations.
type SourceService struct {
	sources  driven.SourceStore
	projects driven.ProjectStore
	now      func() time.Time
}

// NewSourceService creates a new source service.
func NewSourceService(sources driven.SourceStore, projects driven.ProjectStore) *SourceService {
	return &SourceService{sources: sources, projects: projects, now: time.Now}
}

// Add validates and creates a new source in an existing project.
func (s *SourceService) Add(ctx context.Context, source domain.Source) (*domain.Source, error) {
	source.Name = strings.TrimSpace(source.Name)
	if source.Name == "" {
		return nil, fmt.Errorf("%w: source name is required", domain.ErrInvalidInput)
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.Get(ctx, source.ProjectID); err != nil {
		return nil, fmt.Errorf("project %s: %w", source.ProjectID, err)
	}

	source.ID = uuid.New().String()
	source.CreatedAt = s.now()
	source.LastUpdatedAt = nil

	if err := s.sources.Save(ctx, source); err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}
	return &source, nil
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sources.Get(ctx, id)
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

// ListByProject returns the sources of a project.
func (s *SourceService) ListByProject(ctx context.Context, projectID string) ([]domain.Source, error) {
	return s.sources.ListByProject(ctx, projectID)
}

// Remove deletes a source.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if _, err := s.sources.Get(ctx, id); err != nil {
		return err
	}
	if err := s.sources.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}
