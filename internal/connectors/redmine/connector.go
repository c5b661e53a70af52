package redmine

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/httpapi"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/metrics"
)

// Name is the connector identifier.
const Name = "redmine"

var _ driven.Connector = (*Connector)(nil)

// Connector synchronises Redmine issues.
type Connector struct {
	store      driven.DocumentStore
	httpClient *http.Client
	timeout    time.Duration
	rateLimit  float64
	now        func() time.Time
}

// Option configures the connector.
type Option func(*Connector)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Connector) { c.httpClient = hc }
}

// WithTimeout bounds every API call.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) { c.timeout = d }
}

// WithRateLimit sets the number of requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Connector) { c.rateLimit = perSecond }
}

// WithClock replaces the clock used for syncedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) { c.now = now }
}

// New creates a Redmine connector writing to store.
func New(store driven.DocumentStore, opts ...Option) *Connector {
	c := &Connector{
		store:     store,
		timeout:   httpapi.DefaultTimeout,
		rateLimit: httpapi.DefaultRate,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the connector identifier.
func (c *Connector) Name() string {
	return Name
}

// Supports reports whether the source is a Redmine issue tracker.
func (c *Connector) Supports(source *domain.Source) bool {
	return source != nil &&
		source.Kind == domain.SourceKindIssueTracker &&
		source.IssueTracker != nil &&
		source.IssueTracker.Flavour == domain.FlavourRedmine
}

// ImportNewDocuments creates documents for issues not yet stored.
func (c *Connector) ImportNewDocuments(ctx context.Context, source *domain.Source, includeClosed bool) error {
	t, err := c.open(source.IssueTracker)
	if err != nil {
		return err
	}

	for page := 1; ; page++ {
		issues, err := t.issues(ctx, page, includeClosed)
		if err != nil {
			if err := connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "issues", err); err != nil {
				return err
			}
			break
		}
		if len(issues) == 0 {
			break
		}

		for _, listed := range issues {
			externalID := strconv.Itoa(listed.ID)
			known, err := connectors.Known(ctx, c.store, source.ID, externalID)
			if err != nil {
				return err
			}
			if known {
				continue
			}

			full, err := t.issue(ctx, externalID)
			if err != nil {
				if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "issue "+externalID, err); err != nil {
					return err
				}
				continue
			}

			doc := connectors.NewDocument(source.ID, externalID, c.now())
			doc.CreatedAt = connectors.ParseTime(full.CreatedOn)
			t.apply(doc, full, doc.SyncedAt)
			if err := c.store.Save(ctx, doc); err != nil {
				return err
			}
			metrics.DocumentsImported.WithLabelValues(Name).Inc()
		}

		if err := c.store.Flush(ctx); err != nil {
			return err
		}
	}
	return c.store.Flush(ctx)
}

// UpdateDocuments re-fetches every open issue on file individually.
func (c *Connector) UpdateDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	t, err := c.open(source.IssueTracker)
	if err != nil {
		return err
	}

	candidates, err := c.store.FindDocumentsNeedingUpdate(ctx, source.ID)
	if err != nil {
		return err
	}

	for i := range candidates {
		doc := &candidates[i]
		full, err := t.issue(ctx, doc.ExternalID)
		if err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "issue "+doc.ExternalID, err)
		}
		t.apply(doc, full, c.now())
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
	}
	return c.store.Flush(ctx)
}
