package docs

import (
	"context"
	"time"

	"google.golang.org/api/option"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/google"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
)

// Name is the connector identifier.
const Name = "google-docs"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector synchronises Google Docs documents and folders.
type Connector struct {
	store       driven.DocumentStore
	credentials google.Credentials
	clientOpts  []option.ClientOption
	rateLimits  map[google.ServiceType]google.RateLimitConfig
	now         func() time.Time
}

// Option configures the connector.
type Option func(*Connector)

// WithCredentials sets how the APIs are authenticated.
func WithCredentials(creds google.Credentials) Option {
	return func(c *Connector) { c.credentials = creds }
}

// WithClientOptions replaces the credentials with raw client options.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Connector) { c.clientOpts = opts }
}

// WithRateLimit sets the requests per second of both services.
// Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Connector) {
		for svc, cfg := range c.rateLimits {
			cfg.RequestsPerSecond = perSecond
			c.rateLimits[svc] = cfg
		}
	}
}

// WithClock replaces the clock used for syncedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) { c.now = now }
}

// New creates a Google Docs connector writing to store.
func New(store driven.DocumentStore, opts ...Option) *Connector {
	c := &Connector{
		store: store,
		rateLimits: map[google.ServiceType]google.RateLimitConfig{
			google.ServiceDrive: google.DefaultRateLimits[google.ServiceDrive],
			google.ServiceDocs:  google.DefaultRateLimits[google.ServiceDocs],
		},
		now: time.Now,
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

// Supports reports whether the source is a word-processor document source.
func (c *Connector) Supports(source *domain.Source) bool {
	return source != nil &&
		source.Kind == domain.SourceKindWordProcessorDoc &&
		source.WordProcessor != nil
}

func (c *Connector) open(ctx context.Context) (*session, error) {
	opts := c.clientOpts
	if len(opts) == 0 {
		var err error
		if opts, err = c.credentials.ClientOptions(); err != nil {
			return nil, err
		}
	}

	driveSvc, err := google.NewDriveService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	docsSvc, err := google.NewDocsService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &session{
		drive:     driveSvc,
		driveRate: google.NewRateLimiterWithConfig(c.rateLimits[google.ServiceDrive]),
		docs: &docsAPI{
			svc:  docsSvc,
			rate: google.NewRateLimiterWithConfig(c.rateLimits[google.ServiceDocs]),
		},
	}, nil
}

// ImportNewDocuments creates a document for the configured document, or for
// every document below the configured folder, not yet stored.
func (c *Connector) ImportNewDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	rootID, err := ResolveID(source.WordProcessor.URL)
	if err != nil {
		return err
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}

	ids := []string{rootID}
	known := map[string]*metadata{}

	// A root whose metadata cannot be read is treated as a document.
	md, err := s.metadata(ctx, rootID)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Debug("%s: metadata of %s unavailable, treating it as a document: %v", Name, rootID, err)
	case md.MimeType == MimeTypeFolder:
		found, err := s.listFolder(ctx, rootID)
		if err != nil {
			if err := connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "folder "+rootID, err); err != nil {
				return err
			}
		}
		ids = found
	default:
		known[rootID] = md
	}

	for _, id := range ids {
		exists, err := connectors.Known(ctx, c.store, source.ID, id)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		doc := connectors.NewDocument(source.ID, id, c.now())
		if err := c.fill(ctx, s, doc, known[id]); err != nil {
			if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "document "+id, err); err != nil {
				return err
			}
			continue
		}
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsImported.WithLabelValues(Name).Inc()
	}
	return c.store.Flush(ctx)
}

// UpdateDocuments re-fetches every stored document of the source.
func (c *Connector) UpdateDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	stored, err := c.store.ListDocuments(ctx, source.ID)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	s, err := c.open(ctx)
	if err != nil {
		return err
	}

	for i := range stored {
		doc := &stored[i]
		doc.SyncedAt = c.now()
		if err := c.fill(ctx, s, doc, nil); err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "document "+doc.ExternalID, err)
		}
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
	}
	return c.store.Flush(ctx)
}

// fill copies the Drive metadata and the document text into doc.
func (c *Connector) fill(ctx context.Context, s *session, doc *domain.Document, md *metadata) error {
	if md == nil {
		var err error
		if md, err = s.metadata(ctx, doc.ExternalID); err != nil {
			return err
		}
	}
	body, err := s.docs.get(ctx, doc.ExternalID)
	if err != nil {
		return err
	}

	doc.Title = body.Title
	if doc.Title == "" {
		doc.Title = md.Name
	}
	doc.Content = body.Content
	doc.WebURL = WebURL(doc.ExternalID)
	doc.Closed = false
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = md.CreatedAt
	}
	doc.UpdatedAt = md.ModifiedAt
	return nil
}
