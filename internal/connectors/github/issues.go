package github

import (
	"context"
	"strconv"

	gh "github.com/google/go-github/v80/github"

	"github.com/IQ2i/thot/internal/connectors"
	"github.com/IQ2i/thot/internal/core/domain"
)

// issueContent renders the body of an issue followed by its comments.
func issueContent(ctx context.Context, client *Client, repo Repo, issue *gh.Issue) (string, error) {
	var notes []connectors.Note
	if issue.GetComments() > 0 {
		comments, err := client.ListComments(ctx, repo, issue.GetNumber())
		if err != nil {
			return "", err
		}
		notes = make([]connectors.Note, 0, len(comments))
		for _, c := range comments {
			notes = append(notes, connectors.Note{
				Author:    c.GetUser().GetLogin(),
				Body:      c.GetBody(),
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
	}
	return connectors.IssueContent(issue.GetUser().GetLogin(), issue.GetBody(), notes), nil
}

func externalID(issue *gh.Issue) string {
	return strconv.Itoa(issue.GetNumber())
}

func applyIssue(doc *domain.Document, issue *gh.Issue, content string) {
	doc.Title = issue.GetTitle()
	doc.Content = content
	doc.WebURL = issue.GetHTMLURL()
	doc.Closed = issue.GetState() == "closed"
	if issue.UpdatedAt != nil {
		updated := issue.GetUpdatedAt().Time
		doc.UpdatedAt = &updated
	}
}
