package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/IQ2i/thot/internal/connectors/httpapi"
)

// PageSize is the number of items requested per listing call.
const PageSize = 100

// wikiBranch is the default branch of wiki repositories.
const wikiBranch = "master"

// Client wraps the go-github client with helper methods.
type Client struct {
	gh          *gh.Client
	rateLimiter *httpapi.RateLimiter
}

// NewClient creates a client for the repository host, authenticated with token.
func NewClient(repo Repo, token string, base *http.Client, timeout time.Duration, perSecond float64) (*Client, error) {
	if base == nil {
		base = http.DefaultClient
	}

	hc := &http.Client{Transport: base.Transport, Timeout: timeout}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		hc.Timeout = timeout
	}

	client := gh.NewClient(hc)
	if !repo.IsPublic() {
		var err error
		client, err = client.WithEnterpriseURLs(repo.Host, repo.Host)
		if err != nil {
			return nil, fmt.Errorf("configure enterprise urls: %w", err)
		}
	}

	return &Client{
		gh:          client,
		rateLimiter: httpapi.NewRateLimiter(perSecond, httpapi.GitHubHeaders),
	}, nil
}

// ListIssues returns one page of issues and the number of the next page,
// zero when there is none.
func (c *Client) ListIssues(ctx context.Context, repo Repo, state string, page int) ([]*gh.Issue, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.IssueListByRepoOptions{
		State:       state,
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gh.ListOptions{PerPage: PageSize, Page: page},
	}
	issues, resp, err := c.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, 0, wrapError(err, "list issues")
	}
	return issues, resp.NextPage, nil
}

// GetIssue fetches one issue by number.
func (c *Client) GetIssue(ctx context.Context, repo Repo, number int) (*gh.Issue, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issue, resp, err := c.gh.Issues.Get(ctx, repo.Owner, repo.Name, number)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("get issue %d", number))
	}
	return issue, nil
}

// ListComments retrieves all comments of an issue, oldest first.
func (c *Client) ListComments(ctx context.Context, repo Repo, number int) ([]*gh.IssueComment, error) {
	var all []*gh.IssueComment

	opts := &gh.IssueListCommentsOptions{
		Sort:        gh.Ptr("created"),
		Direction:   gh.Ptr("asc"),
		ListOptions: gh.ListOptions{PerPage: PageSize},
	}

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		comments, resp, err := c.gh.Issues.ListComments(ctx, repo.Owner, repo.Name, number, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return nil, wrapError(err, fmt.Sprintf("list comments of issue %d", number))
		}
		all = append(all, comments...)

		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// WikiTree fetches the tree of the wiki repository.
func (c *Client) WikiTree(ctx context.Context, repo Repo) (*gh.Tree, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, repo.Owner, repo.WikiName(), wikiBranch, true)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, wrapError(err, "get wiki tree")
	}
	return tree, nil
}

// WikiBlob fetches and decodes a blob of the wiki repository.
func (c *Client) WikiBlob(ctx context.Context, repo Repo, sha string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, repo.Owner, repo.WikiName(), sha)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return "", wrapError(err, "get wiki blob")
	}

	if blob.GetEncoding() != "base64" {
		return blob.GetContent(), nil
	}
	content := strings.NewReplacer("\n", "", "\r", "").Replace(blob.GetContent())
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return "", fmt.Errorf("decode wiki blob %s: %w", sha, err)
	}
	return string(decoded), nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}
