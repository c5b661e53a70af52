package normalisers

import (
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/normalisers/markdown"
	"github.com/IQ2i/thot/internal/normalisers/plaintext"
)

// Registry maps source kinds to normalisers.
type Registry struct {
	byKind   map[domain.SourceKind]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates a registry whose fallback is the given normaliser.
func NewRegistry(fallback driven.Normaliser) *Registry {
	return &Registry{
		byKind:   make(map[domain.SourceKind]driven.Normaliser),
		fallback: fallback,
	}
}

// NewDefaultRegistry returns the registry used by the application.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(markdown.New())
	r.Register(domain.SourceKindWordProcessorDoc, plaintext.New())
	return r
}

// Register assigns a normaliser to a source kind.
func (r *Registry) Register(kind domain.SourceKind, n driven.Normaliser) {
	r.byKind[kind] = n
}

// For returns the normaliser of a source kind.
func (r *Registry) For(kind domain.SourceKind) driven.Normaliser {
	if n, ok := r.byKind[kind]; ok {
		return n
	}
	return r.fallback
}
