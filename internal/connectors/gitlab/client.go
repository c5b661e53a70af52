package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/connectors/httpapi"
	"github.com/IQ2i/thot/internal/core/domain"
)

// PageSize is the number of items requested per listing call.
const PageSize = 100

type user struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type issue struct {
	IID         int     `json:"iid"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	State       string  `json:"state"`
	WebURL      string  `json:"web_url"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
	Author      *user   `json:"author"`
}

type note struct {
	Body      string `json:"body"`
	System    bool   `json:"system"`
	CreatedAt string `json:"created_at"`
	Author    *user  `json:"author"`
}

type wikiPage struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// project is the API view of one GitLab project.
type project struct {
	api  *httpapi.Client
	host string
	path string
}

func (c *Connector) open(cfg *domain.RemoteConfig) (*project, error) {
	host, path, err := connectors.ResolveProject(cfg)
	if err != nil {
		return nil, err
	}
	if host == "" || path == "" {
		return nil, fmt.Errorf("%w: gitlab project needs a host and a path", domain.ErrInvalidInput)
	}

	opts := []httpapi.Option{
		httpapi.WithTimeout(c.timeout),
		httpapi.WithRateLimiter(httpapi.NewRateLimiter(c.rateLimit, httpapi.GitLabHeaders)),
	}
	if c.httpClient != nil {
		opts = append(opts, httpapi.WithHTTPClient(c.httpClient))
	}
	if cfg.Token != "" {
		opts = append(opts, httpapi.WithBearerToken(cfg.Token))
	}

	base := host + "/api/v4/projects/" + url.PathEscape(path)
	return &project{
		api:  httpapi.New(base, opts...),
		host: host,
		path: path,
	}, nil
}

// issues lists one page of issues.
func (p *project) issues(ctx context.Context, page int, includeClosed bool, iids []string) ([]issue, error) {
	query := url.Values{}
	query.Set("scope", "all")
	query.Set("per_page", strconv.Itoa(PageSize))
	query.Set("page", strconv.Itoa(page))
	if !includeClosed {
		query.Set("state", "opened")
	}
	for _, id := range iids {
		query.Add("iids[]", id)
	}

	var out []issue
	if err := p.api.GetJSON(ctx, "issues", query, &out); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return out, nil
}

// notes returns the comments of an issue, oldest first.
func (p *project) notes(ctx context.Context, iid int) ([]connectors.Note, error) {
	query := url.Values{}
	query.Set("sort", "asc")
	query.Set("per_page", strconv.Itoa(PageSize))

	var raw []note
	if err := p.api.GetJSON(ctx, fmt.Sprintf("issues/%d/notes", iid), query, &raw); err != nil {
		return nil, fmt.Errorf("list notes of issue %d: %w", iid, err)
	}

	notes := make([]connectors.Note, 0, len(raw))
	for _, n := range raw {
		converted := connectors.Note{
			Body:      n.Body,
			System:    n.System,
			CreatedAt: connectors.ParseTime(n.CreatedAt),
		}
		if n.Author != nil {
			converted.Author = n.Author.Name
		}
		notes = append(notes, converted)
	}
	return notes, nil
}

// wikis lists the wiki pages of the project, without their content.
func (p *project) wikis(ctx context.Context) ([]wikiPage, error) {
	var out []wikiPage
	if err := p.api.GetJSON(ctx, "wikis", nil, &out); err != nil {
		return nil, fmt.Errorf("list wikis: %w", err)
	}
	return out, nil
}

// wiki fetches one wiki page with its content.
func (p *project) wiki(ctx context.Context, slug string) (*wikiPage, error) {
	var out wikiPage
	if err := p.api.GetJSON(ctx, "wikis/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, fmt.Errorf("get wiki %s: %w", slug, err)
	}
	return &out, nil
}

func (p *project) wikiURL(slug string) string {
	return p.host + "/" + p.path + "/-/wikis/" + url.PathEscape(slug)
}

// issueContent renders the description and the notes of an issue.
func (p *project) issueContent(ctx context.Context, it issue) (string, error) {
	notes, err := p.notes(ctx, it.IID)
	if err != nil {
		return "", err
	}
	author := ""
	if it.Author != nil {
		author = it.Author.Name
	}
	return connectors.IssueContent(author, it.Description, notes), nil
}

func applyIssue(doc *domain.Document, it issue, content string, now time.Time) {
	doc.Title = it.Title
	doc.Content = content
	doc.Closed = it.State == "closed"
	doc.UpdatedAt = connectors.ParseTimePtr(it.UpdatedAt)
	doc.SyncedAt = now
	if it.WebURL != "" {
		doc.WebURL = it.WebURL
	}
}

func pageTitle(page *wikiPage, listed wikiPage) string {
	switch {
	case page.Title != "":
		return page.Title
	case listed.Title != "":
		return listed.Title
	default:
		return listed.Slug
	}
}
