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

// Ensure Synchronizer implements the interface.
var _ driving.SyncOrchestrator = (*Synchronizer)(nil)

// Sync outcomes used as metric labels.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeUnsupported = "unsupported"
)

// Synchronizer runs the two sync phases of sources.
type Synchronizer struct {
	sources  driven.SourceStore
	registry *ConnectorRegistry
	settings domain.SyncSettings
	now      func() time.Time
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithSyncSettings sets the worker count and per-source timeout.
func WithSyncSettings(settings domain.SyncSettings) SyncOption {
	return func(s *Synchronizer) { s.settings = settings }
}

// WithSyncClock replaces the clock used for lastUpdatedAt.
func WithSyncClock(now func() time.Time) SyncOption {
	return func(s *Synchronizer) { s.now = now }
}

// NewSynchronizer creates a synchronizer.
func NewSynchronizer(sources driven.SourceStore, registry *ConnectorRegistry, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		sources:  sources,
		registry: registry,
		settings: domain.DefaultSyncSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync runs import then update for one source and stamps its last update time.
func (s *Synchronizer) Sync(ctx context.Context, sourceID string, includeClosed bool) error {
	source, err := s.sources.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}
	return s.syncSource(ctx, source, includeClosed)
}

// SyncProject synchronises every source of a project.
func (s *Synchronizer) SyncProject(ctx context.Context, projectID string, includeClosed bool) error {
	sources, err := s.sources.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}
	return s.syncBatch(ctx, sources, includeClosed)
}

// SyncAll synchronises every configured source.
func (s *Synchronizer) SyncAll(ctx context.Context, includeClosed bool) error {
	sources, err := s.sources.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}
	return s.syncBatch(ctx, sources, includeClosed)
}

// syncBatch runs each source on the worker pool. A failed source does not
// stop the others; unsupported sources are logged and left out of the result.
func (s *Synchronizer) syncBatch(ctx context.Context, sources []domain.Source, includeClosed bool) error {
	if len(sources) == 0 {
		return nil
	}

	workers := s.settings.Workers
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(min(workers, len(sources)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for i := range sources {
		source := &sources[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			err := s.syncSource(ctx, source, includeClosed)
			if err != nil && !errors.Is(err, domain.ErrUnsupportedSource) {
				record(fmt.Errorf("sync %s: %w", source.Name, err))
			}
		})
		if err != nil {
			wg.Done()
			record(fmt.Errorf("schedule %s: %w", source.Name, err))
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (s *Synchronizer) syncSource(ctx context.Context, source *domain.Source, includeClosed bool) error {
	connector, err := s.registry.Resolve(source)
	if err != nil {
		metrics.SourcesSynced.WithLabelValues(OutcomeUnsupported).Inc()
		logger.Warn("Skipping source %s: %v", source.Name, err)
		return err
	}

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	start := s.now()
	logger.Info("Syncing source %s with %s", source.Name, connector.Name())

	if err := s.runPhases(ctx, connector, source, includeClosed); err != nil {
		metrics.SourcesSynced.WithLabelValues(OutcomeFailure).Inc()
		logger.Error("Sync of source %s failed: %v", source.Name, err)
		return err
	}

	synced := s.now()
	source.LastUpdatedAt = &synced
	if err := s.sources.Save(ctx, *source); err != nil {
		metrics.SourcesSynced.WithLabelValues(OutcomeFailure).Inc()
		return fmt.Errorf("save source: %w", err)
	}

	metrics.SourcesSynced.WithLabelValues(OutcomeSuccess).Inc()
	logger.Info("Synced source %s in %s", source.Name, synced.Sub(start).Round(time.Millisecond))
	return nil
}

func (s *Synchronizer) runPhases(ctx context.Context, c driven.Connector, source *domain.Source, includeClosed bool) error {
	if err := c.ImportNewDocuments(ctx, source, includeClosed); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := c.UpdateDocuments(ctx, source, includeClosed); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}
