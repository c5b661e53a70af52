package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/httpapi"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
)

// Name is the connector identifier.
const Name = "github"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector synchronises GitHub issues and wiki pages.
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

// New creates a GitHub connector writing to store.
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

// Supports reports whether the source is a GitHub tracker or wiki.
func (c *Connector) Supports(source *domain.Source) bool {
	if source == nil {
		return false
	}
	switch source.Kind {
	case domain.SourceKindIssueTracker, domain.SourceKindWikiPages:
		remote := source.Remote()
		return remote != nil && remote.Flavour == domain.FlavourGitHub
	default:
		return false
	}
}

func (c *Connector) open(source *domain.Source) (*Client, Repo, error) {
	cfg := source.Remote()
	repo, err := ParseRepo(cfg)
	if err != nil {
		return nil, Repo{}, err
	}
	client, err := NewClient(repo, cfg.Token, c.httpClient, c.timeout, c.rateLimit)
	if err != nil {
		return nil, Repo{}, err
	}
	return client, repo, nil
}

// ImportNewDocuments creates documents for issues and wiki pages not yet stored.
func (c *Connector) ImportNewDocuments(ctx context.Context, source *domain.Source, includeClosed bool) error {
	client, repo, err := c.open(source)
	if err != nil {
		return err
	}

	if source.Kind == domain.SourceKindIssueTracker {
		if err := c.importIssues(ctx, client, repo, source, includeClosed); err != nil {
			return err
		}
	}
	if err := c.importWiki(ctx, client, repo, source); err != nil {
		return err
	}
	return c.store.Flush(ctx)
}

func (c *Connector) importIssues(ctx context.Context, client *Client, repo Repo, source *domain.Source, includeClosed bool) error {
	state := "open"
	if includeClosed {
		state = "all"
	}

	for page := 1; page != 0; {
		issues, next, err := client.ListIssues(ctx, repo, state, page)
		if err != nil {
			return connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "issues of "+repo.String(), err)
		}
		if len(issues) == 0 {
			return nil
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			id := externalID(issue)
			known, err := connectors.Known(ctx, c.store, source.ID, id)
			if err != nil {
				return err
			}
			if known {
				continue
			}

			content, err := issueContent(ctx, client, repo, issue)
			if err != nil {
				if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "issue "+id, err); err != nil {
					return err
				}
				continue
			}

			doc := connectors.NewDocument(source.ID, id, c.now())
			doc.CreatedAt = issue.GetCreatedAt().Time
			applyIssue(doc, issue, content)
			if err := c.store.Save(ctx, doc); err != nil {
				return err
			}
			metrics.DocumentsImported.WithLabelValues(Name).Inc()
		}

		if err := c.store.Flush(ctx); err != nil {
			return err
		}
		page = next
	}
	return nil
}

func (c *Connector) importWiki(ctx context.Context, client *Client, repo Repo, source *domain.Source) error {
	pages, err := wikiPages(ctx, client, repo)
	if err != nil {
		return connectors.ListingFailed(ctx, Name, connectors.PhaseImport, "wiki of "+repo.String(), err)
	}

	for _, page := range pages {
		known, err := connectors.Known(ctx, c.store, source.ID, page.Slug)
		if err != nil {
			return err
		}
		if known {
			continue
		}

		content, err := client.WikiBlob(ctx, repo, page.SHA)
		if err != nil {
			if err := connectors.ItemFailed(ctx, Name, connectors.PhaseImport, "wiki "+page.Slug, err); err != nil {
				return err
			}
			continue
		}
		if content == "" {
			continue
		}

		doc := connectors.NewDocument(source.ID, page.Slug, c.now())
		doc.CreatedAt = doc.SyncedAt
		doc.Title = wikiTitle(page.Slug)
		doc.Content = content
		doc.WebURL = repo.WikiURL(page.Slug)
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsImported.WithLabelValues(Name).Inc()
	}
	return nil
}

// UpdateDocuments re-fetches the open issues on file one by one and
// overwrites every stored wiki page.
func (c *Connector) UpdateDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	client, repo, err := c.open(source)
	if err != nil {
		return err
	}

	if source.Kind == domain.SourceKindIssueTracker {
		if err := c.updateIssues(ctx, client, repo, source); err != nil {
			return err
		}
	}
	if err := c.updateWiki(ctx, client, repo, source); err != nil {
		return err
	}
	return c.store.Flush(ctx)
}

func (c *Connector) updateIssues(ctx context.Context, client *Client, repo Repo, source *domain.Source) error {
	candidates, err := c.store.FindDocumentsNeedingUpdate(ctx, source.ID)
	if err != nil {
		return err
	}

	for i := range candidates {
		doc := &candidates[i]
		number, err := strconv.Atoi(doc.ExternalID)
		if err != nil {
			continue // wiki slug
		}

		issue, err := client.GetIssue(ctx, repo, number)
		if err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "issue "+doc.ExternalID, err)
		}
		content, err := issueContent(ctx, client, repo, issue)
		if err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "issue "+doc.ExternalID, err)
		}

		applyIssue(doc, issue, content)
		doc.SyncedAt = c.now()
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
	}
	return nil
}

func (c *Connector) updateWiki(ctx context.Context, client *Client, repo Repo, source *domain.Source) error {
	pages, err := wikiPages(ctx, client, repo)
	if err != nil {
		return connectors.ListingFailed(ctx, Name, connectors.PhaseUpdate, "wiki of "+repo.String(), err)
	}

	for _, page := range pages {
		doc, err := c.store.FindByExternalID(ctx, source.ID, page.Slug)
		if err != nil {
			return err
		}
		if doc == nil {
			continue
		}

		content, err := client.WikiBlob(ctx, repo, page.SHA)
		if err != nil {
			return connectors.ItemFailed(ctx, Name, connectors.PhaseUpdate, "wiki "+page.Slug, err)
		}

		doc.Title = wikiTitle(page.Slug)
		doc.Content = content
		doc.WebURL = repo.WikiURL(page.Slug)
		doc.Closed = false
		doc.SyncedAt = c.now()
		if err := c.store.Save(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsUpdated.WithLabelValues(Name).Inc()
	}
	logger.Debug("%s: refreshed %d wiki pages of %s", Name, len(pages), repo)
	return nil
}
