// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Connector: Imports and refreshes documents of one source variant
//   - Normaliser: Turns source-formatted text into plain prose
//   - PostProcessor: Produces chunks from a document
//   - DocumentStore: Document persistence
//   - SourceStore: Source configuration persistence
//   - ProjectStore: Project persistence
//   - Indexer: Receives batches of chunks
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, chunks are stored without vectors.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
