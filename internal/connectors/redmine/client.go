package redmine

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/httpapi"
	"github.com/IQ2i/thot/internal/core/domain"
)

// PageSize is the number of issues requested per listing call.
const PageSize = 100

type named struct {
	Name string `json:"name"`
}

type journal struct {
	Notes     string `json:"notes"`
	CreatedOn string `json:"created_on"`
	User      *named `json:"user"`
}

type issue struct {
	ID          int       `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CreatedOn   string    `json:"created_on"`
	UpdatedOn   *string   `json:"updated_on"`
	ClosedOn    *string   `json:"closed_on"`
	Author      *named    `json:"author"`
	Journals    []journal `json:"journals"`
}

type issueList struct {
	Issues     []issue `json:"issues"`
	TotalCount int     `json:"total_count"`
}

type issueEnvelope struct {
	Issue issue `json:"issue"`
}

type tracker struct {
	api       *httpapi.Client
	host      string
	projectID string
}

func (c *Connector) open(cfg *domain.RemoteConfig) (*tracker, error) {
	host, path, err := connectors.ResolveProject(cfg)
	if err != nil {
		return nil, err
	}
	projectID := strings.Trim(strings.TrimPrefix(path, "projects/"), "/")
	if host == "" || projectID == "" {
		return nil, fmt.Errorf("%w: redmine project needs a host and an identifier", domain.ErrInvalidInput)
	}

	opts := []httpapi.Option{
		httpapi.WithTimeout(c.timeout),
		httpapi.WithRateLimiter(httpapi.NewRateLimiter(c.rateLimit, httpapi.QuotaHeaders{})),
	}
	if c.httpClient != nil {
		opts = append(opts, httpapi.WithHTTPClient(c.httpClient))
	}
	if cfg.Token != "" {
		opts = append(opts, httpapi.WithHeader("X-Redmine-API-Key", cfg.Token))
	}

	return &tracker{api: httpapi.New(host, opts...), host: host, projectID: projectID}, nil
}

// issues lists one page of issues of the project. Redmine lists open
// issues unless status_id is "*".
func (t *tracker) issues(ctx context.Context, page int, includeClosed bool) ([]issue, error) {
	query := url.Values{}
	query.Set("project_id", t.projectID)
	query.Set("limit", strconv.Itoa(PageSize))
	query.Set("offset", strconv.Itoa(PageSize*(page-1)))
	query.Set("sort", "id")
	if includeClosed {
		query.Set("status_id", "*")
	}

	var out issueList
	if err := t.api.GetJSON(ctx, "issues.json", query, &out); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return out.Issues, nil
}

// issue fetches one issue with its journals.
func (t *tracker) issue(ctx context.Context, id string) (*issue, error) {
	query := url.Values{}
	query.Set("include", "journals")

	var out issueEnvelope
	if err := t.api.GetJSON(ctx, "issues/"+url.PathEscape(id)+".json", query, &out); err != nil {
		return nil, fmt.Errorf("get issue %s: %w", id, err)
	}
	return &out.Issue, nil
}

func (t *tracker) webURL(id int) string {
	return fmt.Sprintf("%s/issues/%d", t.host, id)
}

func content(it *issue) string {
	notes := make([]connectors.Note, 0, len(it.Journals))
	for _, j := range it.Journals {
		n := connectors.Note{Body: j.Notes, CreatedAt: connectors.ParseTime(j.CreatedOn)}
		if j.User != nil {
			n.Author = j.User.Name
		}
		notes = append(notes, n)
	}
	author := ""
	if it.Author != nil {
		author = it.Author.Name
	}
	return connectors.IssueContent(author, it.Description, notes)
}

func (t *tracker) apply(doc *domain.Document, it *issue, now time.Time) {
	doc.Title = it.Subject
	doc.Content = content(it)
	doc.WebURL = t.webURL(it.ID)
	doc.Closed = it.ClosedOn != nil && *it.ClosedOn != ""
	doc.UpdatedAt = connectors.ParseTimePtr(it.UpdatedOn)
	doc.SyncedAt = now
}
