package gitlab

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/httpapi"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
)

// Name is the connector identifier.
const Name = "gitlab"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector synchronises GitLab issues and wiki pages.
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

// New creates a GitLab connector writing to store.
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

// Supports reports whether the source is a GitLab tracker or wiki.
func (c *Connector) Supports(source *domain.Source) bool {
	if source == nil {
		return false
	}
	switch source.Kind {
	case domain.SourceKindIssueTracker, domain.SourceKindWikiPages:
		remote := source.Remote()
		return remote != nil && remote.Flavour == domain.FlavourGitLab
	default:
		return false
	}
}

// ImportNewDocuments creates documents for issues and wiki pages not yet stored.
func (c *Connector) ImportNewDocuments(ctx context.Context, source *domain.Source, includeClosed bool) error {
	p, err := c.open(source.Remote())
	if err != nil {
		return err
	}

	if source.Kind == domain.SourceKindIssueTracker {
		if err := c.importIssues(ctx, p, source, includeClosed); err != nil {
			return err
		}
	}
	if err := c.importWikis(ctx, p, source); err != nil {
		return err
	}
	return c.store.Flush(ctx)
}

func (c *Connector) importIssues(ctx context.Context, p *project, source *domain.Source, includeClosed bool) error {
	for page := 1; ; page++ {
		issues, err := p.issues(ctx, page, includeClosed, nil)
		if err != nil {
			return connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "issues", err)
		}
		if len(issues) == 0 {
			return nil
		}

		for _, it := range issues {
			externalID := strconv.Itoa(it.IID)
			known, err := connectors.Known(ctx, c.store, source.ID, externalID)
			if err != nil {
				return err
			}
			if known {
				continue
			}

			content, err := p.issueContent(ctx, it)
			if err != nil {
				if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "issue "+externalID, err); err != nil {
					return err
				}
				continue
			}

			doc := connectors.NewDocument(source.ID, externalID, c.now())
			doc.CreatedAt = connectors.ParseTime(it.CreatedAt)
			applyIssue(doc, it, content, doc.SyncedAt)
			if err := c.store.Save(ctx, doc); err != nil {
				return err
			}
			metrics.DocumentsImported.WithLabelValues(Name).Inc()
		}

		if err := c.store.Flush(ctx); err != nil {
			return err
		}
	}
}

func (c *Connector) importWikis(ctx context.Context, p *project, source *domain.Source) error {
	pages, err := p.wikis(ctx)
	if err != nil {
		return connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "wikis", err)
	}

	for _, listed := range pages {
		known, err := connectors.Known(ctx, c.store, source.ID, listed.Slug)
		if err != nil {
			return err
		}
		if known {
			continue
		}

		page, err := p.wiki(ctx, listed.Slug)
		if err != nil {
			if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "wiki "+listed.Slug, err); err != nil {
				return err
			}
			continue
		}
		if page.Slug == "" && page.Title == "" && page.Content == "" {
			continue
		}

		doc := connectors.NewDocument(source.ID, listed.Slug, c.now())
		doc.CreatedAt = doc.SyncedAt
		doc.Title = pageTitle(page, listed)
		doc.Content = page.Content
		doc.WebURL = p.wikiURL(listed.Slug)
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsImported.WithLabelValues(Name).Inc()
	}
	return nil
}

// UpdateDocuments refreshes open issues already on file and every stored wiki page.
//
// Issues are re-listed by iid in groups of PageSize without a state filter,
// so an issue closed upstream is seen and marked closed.
func (c *Connector) UpdateDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	p, err := c.open(source.Remote())
	if err != nil {
		return err
	}

	if source.Kind == domain.SourceKindIssueTracker {
		if err := c.updateIssues(ctx, p, source); err != nil {
			return err
		}
	}
	if err := c.updateWikis(ctx, p, source); err != nil {
		return err
	}
	return c.store.Flush(ctx)
}

func (c *Connector) updateIssues(ctx context.Context, p *project, source *domain.Source) error {
	candidates, err := c.store.FindDocumentsNeedingUpdate(ctx, source.ID)
	if err != nil {
		return err
	}

	byIID := make(map[string]*domain.Document, len(candidates))
	iids := make([]string, 0, len(candidates))
	for i := range candidates {
		id := candidates[i].ExternalID
		if isWikiPage(&candidates[i]) {
			continue
		}
		if _, err := strconv.Atoi(id); err != nil {
			continue
		}
		byIID[id] = &candidates[i]
		iids = append(iids, id)
	}

	for start := 0; start < len(iids); start += PageSize {
		end := min(start+PageSize, len(iids))

		issues, err := p.issues(ctx, 1, true, iids[start:end])
		if err != nil {
			if err := connectors.ListingFailed(ctx, Name, connectors.PhaseUpdate, "issues", err); err != nil {
				return err
			}
			break
		}

		for _, it := range issues {
			doc, ok := byIID[strconv.Itoa(it.IID)]
			if !ok {
				continue
			}
			content, err := p.issueContent(ctx, it)
			if err != nil {
				return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "issue "+doc.ExternalID, err)
			}
			applyIssue(doc, it, content, c.now())
			if err := c.store.Save(ctx, doc); err != nil {
				return err
			}
			metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
		}

		if err := c.store.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// isWikiPage reports whether doc was imported from the wiki. Slugs can be numeric.
func isWikiPage(doc *domain.Document) bool {
	return strings.Contains(doc.WebURL, "/-/wikis/")
}

func (c *Connector) updateWikis(ctx context.Context, p *project, source *domain.Source) error {
	pages, err := p.wikis(ctx)
	if err != nil {
		return connectors.ListingFailed(ctx, Name, connectors.PhaseUpdate, "wikis", err)
	}

	for _, listed := range pages {
		doc, err := c.store.FindByExternalID(ctx, source.ID, listed.Slug)
		if err != nil {
			return err
		}
		if doc == nil {
			continue
		}

		page, err := p.wiki(ctx, listed.Slug)
		if err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "wiki "+listed.Slug, err)
		}

		doc.Title = pageTitle(page, listed)
		doc.Content = page.Content
		doc.WebURL = p.wikiURL(listed.Slug)
		doc.Closed = false
		doc.SyncedAt = c.now()
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
	}
	logger.Debug("%s: refreshed wiki pages of %s", Name, p.path)
	return nil
}
