package domain

import (
	"fmt"
	"time"
)

// Ingestion defaults.
const (
	DefaultChunkSize = 3000
	DefaultOverlap   = 300
	DefaultBatchSize = 25
)

// Sync defaults.
const (
	DefaultSyncWorkers = 4
	DefaultSyncTimeout = 10 * time.Minute
)

// IngestSettings controls how documents are chunked and handed to the indexer.
type IngestSettings struct {
	// ChunkSize is the maximum number of characters per chunk.
	ChunkSize int

	// Overlap is the number of characters shared between consecutive chunks.
	Overlap int

	// BatchSize is the number of chunks per indexing call.
	BatchSize int
}

// DefaultIngestSettings returns the settings used when nothing is configured.
func DefaultIngestSettings() IngestSettings {
	return IngestSettings{
		ChunkSize: DefaultChunkSize,
		Overlap:   DefaultOverlap,
		BatchSize: DefaultBatchSize,
	}
}

// Validate checks the chunking parameters and the batch size.
func (s IngestSettings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameter, s.ChunkSize)
	}
	if s.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidParameter, s.Overlap)
	}
	if s.Overlap >= s.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidParameter, s.Overlap, s.ChunkSize)
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidParameter, s.BatchSize)
	}
	return nil
}

// SyncSettings controls batch synchronisation.
type SyncSettings struct {
	// IncludeClosed lifts the open-items-only restriction on listings.
	IncludeClosed bool

	// Workers is the number of sources synchronised concurrently.
	Workers int

	// Timeout bounds the sync of a single source.
	Timeout time.Duration
}

// DefaultSyncSettings returns the settings used when nothing is configured.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		Workers: DefaultSyncWorkers,
		Timeout: DefaultSyncTimeout,
	}
}
