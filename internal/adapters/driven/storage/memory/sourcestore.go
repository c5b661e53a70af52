package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore is an in-memory implementation of driven.SourceStore.
type SourceStore struct {
	mu      sync.RWMutex
	sources map[string]domain.Source
}

// NewSourceStore creates a new in-memory source store.
func NewSourceStore() *SourceStore {
	return &SourceStore{
		sources: make(map[string]domain.Source),
	}
}

// Save stores or updates a source.
func (s *SourceStore) Save(_ context.Context, source domain.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[source.ID] = source
	return nil
}

// Get retrieves a source by ID.
func (s *SourceStore) Get(_ context.Context, id string) (*domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &source, nil
}

// Delete removes a source.
func (s *SourceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, id)
	return nil
}

// List returns all configured sources ordered by name.
func (s *SourceStore) List(_ context.Context) ([]domain.Source, error) {
	return s.filter(func(domain.Source) bool { return true }), nil
}

// ListByProject returns the sources of a project ordered by name.
func (s *SourceStore) ListByProject(_ context.Context, projectID string) ([]domain.Source, error) {
	return s.filter(func(src domain.Source) bool { return src.ProjectID == projectID }), nil
}

func (s *SourceStore) filter(keep func(domain.Source) bool) []domain.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Source, 0, len(s.sources))
	for _, source := range s.sources {
		if keep(source) {
			result = append(result, source)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// projectIDOf returns the project of a source, or "" when it is unknown.
func (s *SourceStore) projectIDOf(sourceID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[sourceID].ProjectID
}
