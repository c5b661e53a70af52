// Package domain defines the core business entities for Thot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Project: A group of sources indexed together
//   - Source: A configured external origin (tagged union of variants)
//   - Document: A canonical item imported from a source
//   - Chunk: A bounded slice of normalised document text
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
