package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Project queries resolve sources through the given SourceStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	byKey     map[docKey]string
	sources   *SourceStore
	flushes   int
}

type docKey struct {
	sourceID   string
	externalID string
}

// NewDocumentStore creates a new in-memory document store.
// Sources may be nil when project queries are not needed.
func NewDocumentStore(sources *SourceStore) *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		byKey:     make(map[docKey]string),
		sources:   sources,
	}
}

// FindByExternalID returns the document of a source with the given external id, or nil.
func (s *DocumentStore) FindByExternalID(_ context.Context, sourceID, externalID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[docKey{sourceID, externalID}]
	if !ok {
		return nil, nil
	}
	doc := s.documents[id]
	return &doc, nil
}

// FindDocumentsNeedingUpdate returns the open documents of a source.
func (s *DocumentStore) FindDocumentsNeedingUpdate(_ context.Context, sourceID string) ([]domain.Document, error) {
	return s.filter(func(doc *domain.Document) bool {
		return doc.SourceID == sourceID && !doc.Closed
	}), nil
}

// FindDocumentsNeedingIndex returns the documents of a project that need indexing,
// or all of them when includeClosed is set.
func (s *DocumentStore) FindDocumentsNeedingIndex(_ context.Context, projectID string, includeClosed bool) ([]domain.Document, error) {
	if s.sources == nil {
		return nil, nil
	}
	return s.filter(func(doc *domain.Document) bool {
		if s.sources.projectIDOf(doc.SourceID) != projectID {
			return false
		}
		return includeClosed || doc.NeedsIndex()
	}), nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns documents for a source.
func (s *DocumentStore) ListDocuments(_ context.Context, sourceID string) ([]domain.Document, error) {
	return s.filter(func(doc *domain.Document) bool { return doc.SourceID == sourceID }), nil
}

// Save stores or updates a document. A second document with the same
// source and external id is rejected.
func (s *DocumentStore) Save(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := docKey{doc.SourceID, doc.ExternalID}
	if owner, ok := s.byKey[key]; ok && owner != doc.ID {
		return domain.ErrAlreadyExists
	}
	if previous, ok := s.documents[doc.ID]; ok {
		delete(s.byKey, docKey{previous.SourceID, previous.ExternalID})
	}
	s.documents[doc.ID] = *doc
	s.byKey[key] = doc.ID
	return nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.byKey, docKey{doc.SourceID, doc.ExternalID})
	delete(s.documents, id)
	return nil
}

// Flush is a no-op apart from counting calls.
func (s *DocumentStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

// Flushes returns the number of Flush calls.
func (s *DocumentStore) Flushes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushes
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func (s *DocumentStore) filter(keep func(*domain.Document) bool) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for id := range s.documents {
		doc := s.documents[id]
		if keep(&doc) {
			result = append(result, doc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
