package driving

import "context"

// SyncOrchestrator coordinates document synchronisation from sources.
type SyncOrchestrator interface {
	// Sync runs the import then update phases for one source and stamps
	// its last update time.
	Sync(ctx context.Context, sourceID string, includeClosed bool) error

	// SyncProject synchronises every source of a project.
	SyncProject(ctx context.Context, projectID string, includeClosed bool) error

	// SyncAll synchronises every configured source.
	SyncAll(ctx context.Context, includeClosed bool) error
}

// IngestService turns stored documents into indexed chunks.
type IngestService interface {
	// IngestProject indexes the documents of a project that need it.
	// When includeClosed is true every document of the project is reindexed.
	IngestProject(ctx context.Context, projectID string, includeClosed bool) (*IngestReport, error)

	// IngestAll indexes every project.
	IngestAll(ctx context.Context, includeClosed bool) ([]IngestReport, error)
}

// IngestReport summarises one project ingestion.
type IngestReport struct {
	// ProjectID identifies the project.
	ProjectID string

	// Documents is the number of documents processed.
	Documents int

	// Chunks is the number of chunks handed to the indexer.
	Chunks int

	// Batches is the number of indexer calls.
	Batches int
}
