// Package chunker splits normalised document content into overlapping,
// size-bounded chunks that respect paragraph, sentence and word boundaries.
package chunker

import (
	"context"
	"fmt"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor splits document content into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// Invalid sizes fail with domain.ErrInvalidParameter.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := ValidateParameters(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	parts, err := Split(doc.Content, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for position, content := range parts {
		chunks = append(chunks, domain.Chunk{
			ID:         fmt.Sprintf("%s-%d", doc.ID, position),
			DocumentID: doc.ID,
			Content:    content,
			Position:   position,
			Metadata:   make(map[string]any),
		})
	}

	return chunks, nil
}
