// Package sqlite provides the SQLite implementation of the Thot stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database file holds:
//
//   - ProjectStore: projects and their codes
//   - SourceStore: source variants, their configuration and last sync time
//   - DocumentStore: synchronised documents
//   - Indexer: the chunks produced by ingestion, with optional embeddings
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.thot/data/thot.db
package sqlite
