package driven

import (
	"context"

	"github.com/IQ2i/thot/internal/core/domain"
)

// Connector synchronises the documents of one source variant.
// Each connector (gitlab, redmine, github, google docs, manual) implements this interface.
//
// Import is additive only: an item whose external identifier is already
// stored for the source is skipped and the stored document is left untouched.
// Update overwrites the mutable fields of documents already on file.
type Connector interface {
	// Name returns the connector identifier for logging.
	Name() string

	// Supports reports whether this connector handles the source.
	// It is a structural check and performs no I/O.
	Supports(source *domain.Source) bool

	// ImportNewDocuments creates documents for external items not yet stored.
	// When includeClosed is false only open items are listed.
	ImportNewDocuments(ctx context.Context, source *domain.Source, includeClosed bool) error

	// UpdateDocuments re-fetches documents already known for the source and
	// overwrites their mutable fields.
	UpdateDocuments(ctx context.Context, source *domain.Source, includeClosed bool) error
}
