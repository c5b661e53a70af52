// Package contextual prefixes every chunk with the title and location of
// its document and attaches the metadata handed to the indexer.
package contextual

import (
	"context"
	"fmt"
	"time"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Metadata keys set on every chunk.
const (
	MetaTitle      = "title"
	MetaContent    = "content"
	MetaClosed     = "closed"
	MetaCreatedAt  = "createdAt"
	MetaWebURL     = "web_url"
	MetaDocumentID = "document_id"
	MetaPosition   = "position"
)

// Processor decorates chunks produced by a previous processor.
type Processor struct{}

// New creates a new contextual processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "contextual"
}

// Process rewrites each chunk content as
// "Title: {title}\nSource: {webURL}\nContent: {chunk}".
// The bare chunk text is kept in the content metadata.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		meta := make(map[string]any, len(c.Metadata)+7)
		for k, v := range c.Metadata {
			meta[k] = v
		}
		meta[MetaTitle] = doc.Title
		meta[MetaContent] = c.Content
		meta[MetaClosed] = doc.Closed
		meta[MetaCreatedAt] = doc.CreatedAt.UTC().Format(time.RFC3339)
		meta[MetaWebURL] = doc.WebURL
		meta[MetaDocumentID] = doc.ID
		meta[MetaPosition] = c.Position

		c.Content = fmt.Sprintf("Title: %s\nSource: %s\nContent: %s", doc.Title, doc.WebURL, c.Content)
		c.Metadata = meta
		out = append(out, c)
	}
	return out, nil
}
