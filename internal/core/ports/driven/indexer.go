package driven

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// Indexer receives chunks ready for embedding and retrieval.
// It is invoked once per full batch and once more for the trailing partial batch.
type Indexer interface {
	// Index stores one batch of chunks.
	Index(ctx context.Context, batch []domain.Chunk) error

	// Clear drops the stored chunks of the given documents.
	Clear(ctx context.Context, documentIDs []string) error
}
