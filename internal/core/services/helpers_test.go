package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IQ2i/thot/internal/adapters/driven/storage/memory"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// fakeConnector records its calls and optionally writes documents.
type fakeConnector struct {
	mu        sync.Mutex
	name      string
	supports  bool
	importErr error
	updateErr error
	block     bool
	docs      *memory.DocumentStore
	toImport  []domain.Document
	calls     []string
}

var _ driven.Connector = (*fakeConnector)(nil)

func newFakeConnector(name string) *fakeConnector {
	return &fakeConnector{name: name, supports: true}
}

func (f *fakeConnector) Name() string { return f.name }

func (f *fakeConnector) Supports(*domain.Source) bool { return f.supports }

func (f *fakeConnector) ImportNewDocuments(ctx context.Context, source *domain.Source, _ bool) error {
	f.record("import:" + source.ID)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.importErr != nil {
		return f.importErr
	}
	for i := range f.toImport {
		doc := f.toImport[i]
		if doc.SourceID != source.ID {
			continue
		}
		existing, err := f.docs.FindByExternalID(ctx, source.ID, doc.ExternalID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := f.docs.Save(ctx, &doc); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeConnector) UpdateDocuments(_ context.Context, source *domain.Source, _ bool) error {
	f.record("update:" + source.ID)
	return f.updateErr
}

func (f *fakeConnector) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeConnector) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// wordPipeline emits one chunk per whitespace-separated word.
type wordPipeline struct {
	err error
}

func (p wordPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if p.err != nil {
		return nil, p.err
	}
	var chunks []domain.Chunk
	for i, word := range strings.Fields(doc.Content) {
		chunks = append(chunks, domain.Chunk{
			ID:         fmt.Sprintf("%s-%d", doc.ID, i),
			DocumentID: doc.ID,
			Content:    word,
			Position:   i,
		})
	}
	return chunks, nil
}

func gitlabSource(id, projectID string) domain.Source {
	return domain.Source{
		ID:        id,
		ProjectID: projectID,
		Name:      "source " + id,
		Kind:      domain.SourceKindIssueTracker,
		IssueTracker: &domain.RemoteConfig{
			Flavour: domain.FlavourGitLab,
			BaseURL: "https://gitlab.example.com",
			Project: "group/app",
			Token:   "secret",
		},
	}
}

func manualSource(id, projectID string) domain.Source {
	return domain.Source{ID: id, ProjectID: projectID, Name: "notes " + id, Kind: domain.SourceKindManual}
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}
