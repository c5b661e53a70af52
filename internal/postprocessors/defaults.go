package postprocessors

import (
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/postprocessors/chunker"
	"github.com/IQ2i/thot/internal/postprocessors/contextual"
)

// DefaultProcessors is the order used by the ingestion driver.
var DefaultProcessors = []string{"chunker", "contextual"}

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("contextual", buildContextual)
}

// NewDefaultPipeline builds the chunker followed by the contextual processor.
func NewDefaultPipeline(settings domain.IngestSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return Build(r, settings, DefaultProcessors...)
}

func buildChunker(settings domain.IngestSettings) (driven.PostProcessor, error) {
	return chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.Overlap),
	)
}

func buildContextual(_ domain.IngestSettings) (driven.PostProcessor, error) {
	return contextual.New(), nil
}
