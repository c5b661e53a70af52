// Package manual implements the connector of sources whose documents are
// authored directly in Thot. Both sync phases do nothing.
package manual

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Name is the connector identifier.
const Name = "manual"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector is the no-op connector of manual sources.
type Connector struct{}

// New creates a manual connector.
func New() *Connector {
	return &Connector{}
}

// Name returns the connector identifier.
func (c *Connector) Name() string {
	return Name
}

// Supports reports whether the source is a manual source.
func (c *Connector) Supports(source *domain.Source) bool {
	return source != nil && source.Kind == domain.SourceKindManual
}

// ImportNewDocuments does nothing; manual documents are never discovered.
func (c *Connector) ImportNewDocuments(context.Context, *domain.Source, bool) error {
	return nil
}

// UpdateDocuments does nothing; manual documents are edited in place.
func (c *Connector) UpdateDocuments(context.Context, *domain.Source, bool) error {
	return nil
}
