package driven

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// DocumentStore persists documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// FindByExternalID returns the document of a source with the given
	// external identifier, or nil when there is none.
	FindByExternalID(ctx context.Context, sourceID, externalID string) (*domain.Document, error)

	// FindDocumentsNeedingUpdate returns the documents of a source that are currently open.
	// Documents already closed are never candidates, even when a sync asks
	// for closed items; those only arrive through import.
	FindDocumentsNeedingUpdate(ctx context.Context, sourceID string) ([]domain.Document, error)

	// FindDocumentsNeedingIndex returns the documents of a project that were
	// never indexed or were synced after their last indexing.
	// When includeClosed is true the filter is bypassed and every document
	// of the project is returned.
	FindDocumentsNeedingIndex(ctx context.Context, projectID string, includeClosed bool) ([]domain.Document, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns documents for a source.
	ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error)

	// Save stores or updates a document.
	Save(ctx context.Context, doc *domain.Document) error

	// Delete removes a document and its chunks.
	// Returns domain.ErrNotFound when there is no such document.
	Delete(ctx context.Context, id string) error

	// Flush makes pending writes durable.
	Flush(ctx context.Context) error
}
