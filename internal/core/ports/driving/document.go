package driving

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// DocumentService manages documents within sources.
type DocumentService interface {
	// ListBySource returns all documents for a source.
	ListBySource(ctx context.Context, sourceID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// AddManual creates a document in a manual source.
	// The external identifier is generated.
	AddManual(ctx context.Context, sourceID, title, content string) (*domain.Document, error)

	// EditManual replaces the title and content of a manual document and
	// queues it for reindexing.
	EditManual(ctx context.Context, documentID, title, content string) (*domain.Document, error)

	// RemoveManual deletes a manual document along with its chunks.
	RemoveManual(ctx context.Context, documentID string) error
}
