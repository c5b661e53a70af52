package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is an in-memory implementation of driven.ProjectStore.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]domain.Project)}
}

// Save stores or updates a project. Codes are unique.
func (s *ProjectStore) Save(_ context.Context, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.projects {
		if id != project.ID && existing.Code == project.Code {
			return domain.ErrAlreadyExists
		}
	}
	s.projects[project.ID] = project
	return nil
}

// Get retrieves a project by ID.
func (s *ProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &project, nil
}

// GetByCode retrieves a project by its code.
func (s *ProjectStore) GetByCode(_ context.Context, code string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, project := range s.projects {
		if project.Code == code {
			return &project, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all projects ordered by code.
func (s *ProjectStore) List(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Project, 0, len(s.projects))
	for _, project := range s.projects {
		result = append(result, project)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}
