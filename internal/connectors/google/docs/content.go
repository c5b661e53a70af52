package docs

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"

	"github.com/IQ2i/thot/internal/connectors/google"
)

type docsAPI struct {
	svc  *docs.Service
	rate *google.RateLimiter
}

// fetched is a document with its extracted text.
type fetched struct {
	Title   string
	Content string
}

func (d *docsAPI) get(ctx context.Context, id string) (*fetched, error) {
	if err := d.rate.Wait(ctx); err != nil {
		return nil, err
	}
	doc, err := d.svc.Documents.Get(id).Context(ctx).Do()
	d.rate.Observe(err)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, google.WrapError(err))
	}
	return &fetched{Title: doc.Title, Content: PlainText(doc)}, nil
}
