package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/ports/driving"
	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// Chunk metadata keys added by the ingestor.
const (
	MetaSource  = "source"
	MetaProject = "project"
)

// Ingestor normalises, chunks and indexes documents.
type Ingestor struct {
	projects    driven.ProjectStore
	sources     driven.SourceStore
	docs        driven.DocumentStore
	normalisers driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
	indexer     driven.Indexer
	batchSize   int
	workers     int
	now         func() time.Time
}

// IngestOption configures an Ingestor.
type IngestOption func(*Ingestor)

// WithBatchSize sets the number of chunks per indexer call.
func WithBatchSize(n int) IngestOption {
	return func(i *Ingestor) { i.batchSize = n }
}

// WithIngestWorkers sets how many projects IngestAll processes concurrently.
func WithIngestWorkers(n int) IngestOption {
	return func(i *Ingestor) { i.workers = n }
}

// WithIngestClock replaces the clock used for indexedAt.
func WithIngestClock(now func() time.Time) IngestOption {
	return func(i *Ingestor) { i.now = now }
}

// NewIngestor creates an ingestion driver.
func NewIngestor(
	projects driven.ProjectStore,
	sources driven.SourceStore,
	docs driven.DocumentStore,
	normalisers driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	indexer driven.Indexer,
	opts ...IngestOption,
) *Ingestor {
	i := &Ingestor{
		projects:    projects,
		sources:     sources,
		docs:        docs,
		normalisers: normalisers,
		pipeline:    pipeline,
		indexer:     indexer,
		batchSize:   domain.DefaultBatchSize,
		workers:     domain.DefaultSyncWorkers,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IngestProject indexes the documents of a project that need it.
//
// Chunks accumulate across documents; the indexer is called every batchSize
// chunks and once more for the trailing partial batch. Documents are stamped
// as indexed only after every batch succeeded.
func (i *Ingestor) IngestProject(ctx context.Context, projectID string, includeClosed bool) (*driving.IngestReport, error) {
	if i.batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", domain.ErrInvalidParameter, i.batchSize)
	}

	sources, err := i.sources.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	byID := make(map[string]*domain.Source, len(sources))
	for n := range sources {
		byID[sources[n].ID] = &sources[n]
	}

	docs, err := i.docs.FindDocumentsNeedingIndex(ctx, projectID, includeClosed)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	report := &driving.IngestReport{ProjectID: projectID}
	batch := make([]domain.Chunk, 0, i.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.indexer.Index(ctx, batch); err != nil {
			return fmt.Errorf("index batch %d: %w", report.Batches+1, err)
		}
		report.Batches++
		report.Chunks += len(batch)
		metrics.ChunksIndexed.WithLabelValues(projectID).Add(float64(len(batch)))
		batch = make([]domain.Chunk, 0, i.batchSize)
		return nil
	}

	var empty []string
	for n := range docs {
		doc := &docs[n]
		source, ok := byID[doc.SourceID]
		if !ok {
			logger.Warn("Skipping document %s: source %s is not in project %s", doc.ID, doc.SourceID, projectID)
			continue
		}

		chunks, err := i.chunk(ctx, doc, source, projectID)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 0 {
			empty = append(empty, doc.ID)
		}
		for _, c := range chunks {
			batch = append(batch, c)
			if len(batch) == i.batchSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
		report.Documents++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	// No position-0 chunk reaches the indexer for these, so drop what an
	// earlier ingestion left behind.
	if len(empty) > 0 {
		if err := i.indexer.Clear(ctx, empty); err != nil {
			return nil, fmt.Errorf("clear chunks: %w", err)
		}
		logger.Debug("Cleared chunks of %d empty documents in project %s", len(empty), projectID)
	}

	indexedAt := i.now()
	for n := range docs {
		if _, ok := byID[docs[n].SourceID]; !ok {
			continue
		}
		docs[n].IndexedAt = &indexedAt
		if err := i.docs.Save(ctx, &docs[n]); err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}
	}
	if err := i.docs.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush documents: %w", err)
	}

	logger.Info("Indexed project %s: %d documents, %d chunks in %d batches",
		projectID, report.Documents, report.Chunks, report.Batches)
	return report, nil
}

// chunk normalises a copy of doc and runs it through the pipeline.
func (i *Ingestor) chunk(ctx context.Context, doc *domain.Document, source *domain.Source, projectID string) ([]domain.Chunk, error) {
	normalised := *doc
	normalised.Content = i.normalisers.For(source.Kind).Normalise(doc.Content)

	chunks, err := i.pipeline.Process(ctx, &normalised)
	if err != nil {
		return nil, fmt.Errorf("process document %s: %w", doc.ID, err)
	}

	sourceType := string(source.Flavour())
	if sourceType == "" {
		sourceType = string(source.Kind)
	}
	for n := range chunks {
		if chunks[n].Metadata == nil {
			chunks[n].Metadata = make(map[string]any, 2)
		}
		chunks[n].Metadata[MetaSource] = sourceType
		chunks[n].Metadata[MetaProject] = projectID
	}
	return chunks, nil
}

// IngestAll indexes every project. Projects run concurrently on the worker
// pool; a failed project does not stop the others.
func (i *Ingestor) IngestAll(ctx context.Context, includeClosed bool) ([]driving.IngestReport, error) {
	projects, err := i.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(max(1, min(i.workers, len(projects))))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	reports := make([]*driving.IngestReport, len(projects))
	errs := make([]error, len(projects))
	var wg sync.WaitGroup

	for n := range projects {
		project := projects[n]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			report, err := i.IngestProject(ctx, project.ID, includeClosed)
			if err != nil {
				errs[n] = fmt.Errorf("index %s: %w", project.Code, err)
				return
			}
			reports[n] = report
		})
		if err != nil {
			wg.Done()
			errs[n] = fmt.Errorf("schedule %s: %w", project.Code, err)
		}
	}
	wg.Wait()

	var out []driving.IngestReport
	for _, r := range reports {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, errors.Join(errs...)
}
