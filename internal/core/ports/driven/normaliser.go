package driven

import "github.com/IQ2i/thot/internal/core/domain"

// Normaliser converts source-formatted text into plain prose.
// Implementations are pure and safe for concurrent use.
type Normaliser interface {
	// Name returns the normaliser name for logging.
	Name() string

	// Normalise returns the cleaned text. Empty input yields "".
	Normalise(raw string) string
}

// NormaliserRegistry selects the normaliser of a source kind.
type NormaliserRegistry interface {
	// For returns the normaliser of the kind, or the fallback normaliser.
	For(kind domain.SourceKind) Normaliser
}
