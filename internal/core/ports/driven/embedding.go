package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, chunks are indexed without vectors.
type EmbeddingService interface {
	// EmbedBatch generates one embedding per text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
