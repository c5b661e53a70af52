package driven

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// SourceStore persists source configurations.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// Delete removes a source.
	Delete(ctx context.Context, id string) error

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// ListByProject returns the sources of a project.
	ListByProject(ctx context.Context, projectID string) ([]domain.Source, error)
}

// ProjectStore persists projects.
type ProjectStore interface {
	// Save stores or updates a project.
	Save(ctx context.Context, project domain.Project) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// GetByCode retrieves a project by its short code.
	GetByCode(ctx context.Context, code string) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]domain.Project, error)
}
