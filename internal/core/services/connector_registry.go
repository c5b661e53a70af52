package services

import (
	"fmt"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

type dispatchKey struct {
	kind    domain.SourceKind
	flavour domain.Flavour
}

// ConnectorRegistry is the dispatch table from source variant to connector.
// It is filled once at startup and read-only afterwards.
type ConnectorRegistry struct {
	connectors map[dispatchKey]driven.Connector
}

// NewConnectorRegistry creates an empty registry.
func NewConnectorRegistry() *ConnectorRegistry {
	return &ConnectorRegistry{connectors: make(map[dispatchKey]driven.Connector)}
}

// Register routes sources of kind and flavour to c.
// Manual and word-processor sources are registered with their implicit flavour.
func (r *ConnectorRegistry) Register(kind domain.SourceKind, flavour domain.Flavour, c driven.Connector) {
	r.connectors[dispatchKey{kind, flavour}] = c
}

// Resolve returns the connector of a source.
// It fails with domain.ErrUnsupportedSource when no connector is registered
// for the variant or the registered one rejects the source.
func (r *ConnectorRegistry) Resolve(source *domain.Source) (driven.Connector, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", domain.ErrUnsupportedSource)
	}
	c, ok := r.connectors[dispatchKey{source.Kind, source.Flavour()}]
	if !ok || !c.Supports(source) {
		return nil, fmt.Errorf("%w: %s (%s %s)", domain.ErrUnsupportedSource, source.ID, source.Kind, source.Flavour())
	}
	return c, nil
}

// Len returns the number of registered variants.
func (r *ConnectorRegistry) Len() int {
	return len(r.connectors)
}
