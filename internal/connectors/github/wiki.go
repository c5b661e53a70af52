package github

import (
	"context"
	"path"
	"strings"

	"github.com/IQ2i/thot/internal/connectors/httpapi"
)

// wikiPage is one markdown blob of the wiki repository.
type wikiPage struct {
	Slug string
	SHA  string
}

// wikiPages lists the markdown pages of the wiki. A repository without a
// wiki yields no pages.
func wikiPages(ctx context.Context, client *Client, repo Repo) ([]wikiPage, error) {
	tree, err := client.WikiTree(ctx, repo)
	if err != nil {
		if httpapi.IsNotFound(err) || httpapi.StatusCode(err) == 409 {
			return nil, nil
		}
		return nil, err
	}

	pages := make([]wikiPage, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		p := entry.GetPath()
		ext := path.Ext(p)
		if !strings.EqualFold(ext, ".md") && !strings.EqualFold(ext, ".markdown") {
			continue
		}
		pages = append(pages, wikiPage{Slug: strings.TrimSuffix(p, ext), SHA: entry.GetSHA()})
	}
	return pages, nil
}

// wikiTitle turns a page slug such as "Getting-Started" into "Getting Started".
func wikiTitle(slug string) string {
	return strings.ReplaceAll(path.Base(slug), "-", " ")
}
