package driving

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// SourceService manages source configurations.
type SourceService interface {
	// Add validates and creates a new source.
	Add(ctx context.Context, source domain.Source) (*domain.Source, error)

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// ListByProject returns the sources of a project.
	ListByProject(ctx context.Context, projectID string) ([]domain.Source, error)

	// Remove deletes a source.
	Remove(ctx context.Context, id string) error
}

// ProjectService manages projects.
type ProjectService interface {
	// Add creates a project with a unique code.
	Add(ctx context.Context, code, name string) (*domain.Project, error)

	// Resolve finds a project by ID or code.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]domain.Project, error)
}
