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

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService provides document access.
type DocumentService struct {
	docs    driven.DocumentStore
	sources driven.SourceStore
	now     func() time.Time
}

// NewDocumentService creates a new document service.
func NewDocumentService(docs driven.DocumentStore, sources driven.SourceStore) *DocumentService {
	return &DocumentService{docs: docs, sources: sources, now: time.Now}
}

// ListBySource returns all documents for a source.
func (s *DocumentService) ListBySource(ctx context.Context, sourceID string) ([]domain.Document, error) {
	return s.docs.ListDocuments(ctx, sourceID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docs.GetDocument(ctx, documentID)
}

// AddManual creates a document in a manual source.
func (s *DocumentService) AddManual(ctx context.Context, sourceID, title, content string) (*domain.Document, error) {
	if err := s.requireManual(ctx, sourceID); err != nil {
		return nil, err
	}
	title, err := checkTitle(title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := &domain.Document{
		ID:         uuid.New().String(),
		SourceID:   sourceID,
		ExternalID: uuid.New().String(),
		Title:      title,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  &now,
		SyncedAt:   now,
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// EditManual replaces the title and content of a manual document.
// Moving SyncedAt past IndexedAt puts it back in the indexing queue.
func (s *DocumentService) EditManual(ctx context.Context, documentID, title, content string) (*domain.Document, error) {
	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := s.requireManual(ctx, doc.SourceID); err != nil {
		return nil, err
	}
	if doc.Title, err = checkTitle(title); err != nil {
		return nil, err
	}

	now := s.now()
	doc.Content = content
	doc.UpdatedAt = &now
	doc.SyncedAt = now
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// RemoveManual deletes a manual document.
func (s *DocumentService) RemoveManual(ctx context.Context, documentID string) error {
	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if err := s.requireManual(ctx, doc.SourceID); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.docs.Flush(ctx); err != nil {
		return fmt.Errorf("flush documents: %w", err)
	}
	return nil
}

// requireManual fails unless sourceID names a manual source.
func (s *DocumentService) requireManual(ctx context.Context, sourceID string) error {
	source, err := s.sources.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}
	if source.Kind != domain.SourceKindManual {
		return fmt.Errorf("%w: source %s is not a manual source", domain.ErrInvalidInput, source.Name)
	}
	return nil
}

func (s *DocumentService) save(ctx context.Context, doc *domain.Document) error {
	if err := s.docs.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := s.docs.Flush(ctx); err != nil {
		return fmt.Errorf("flush documents: %w", err)
	}
	return nil
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return title, nil
}
