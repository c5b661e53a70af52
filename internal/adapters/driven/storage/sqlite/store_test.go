package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

var baseTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

// seedSource creates a project and a source to satisfy foreign keys.
func seedSource(t *testing.T, store *Store, projectID, sourceID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := store.ProjectStore().Get(ctx, projectID); errors.Is(err, domain.ErrNotFound) {
		require.NoError(t, store.ProjectStore().Save(ctx, domain.Project{
			ID: projectID, Code: "code-" + projectID, Name: projectID, CreatedAt: baseTime,
		}))
	}
	require.NoError(t, store.SourceStore().Save(ctx, domain.Source{
		ID: sourceID, ProjectID: projectID, Name: sourceID, Kind: domain.SourceKindManual, CreatedAt: baseTime,
	}))
}

func newDoc(id, sourceID, externalID string) *domain.Document {
	return &domain.Document{
		ID:         id,
		SourceID:   sourceID,
		ExternalID: externalID,
		Title:      "Title " + id,
		Content:    "Content " + id,
		CreatedAt:  baseTime,
		SyncedAt:   baseTime,
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Contains(t, store.Path(), DatabaseFile)

	v, err := store.version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, store.Close())

	// Reopening applies nothing twice.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()
	v, err = store.version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

// ==================== Project Store Tests ====================

func TestProjectStore(t *testing.T) {
	store := setupTestStore(t)
	projects := store.ProjectStore()
	ctx := context.Background()

	require.NoError(t, projects.Save(ctx, domain.Project{ID: "p2", Code: "web", Name: "Website", CreatedAt: baseTime}))
	require.NoError(t, projects.Save(ctx, domain.Project{ID: "p1", Code: "api", Name: "API", CreatedAt: baseTime}))

	got, err := projects.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "api", got.Code)
	assert.Equal(t, "API", got.Name)
	assert.WithinDuration(t, baseTime, got.CreatedAt, 0)

	byCode, err := projects.GetByCode(ctx, "web")
	require.NoError(t, err)
	assert.Equal(t, "p2", byCode.ID)

	_, err = projects.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = projects.GetByCode(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = projects.Save(ctx, domain.Project{ID: "p3", Code: "api", Name: "Other", CreatedAt: baseTime})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	require.NoError(t, projects.Save(ctx, domain.Project{ID: "p1", Code: "api", Name: "Renamed", CreatedAt: baseTime}))

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "api", list[0].Code)
	assert.Equal(t, "Renamed", list[0].Name)
	assert.Equal(t, "web", list[1].Code)
}

// ==================== Source Store Tests ====================

func TestSourceStore_RoundTripsVariants(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "manual")
	sources := store.SourceStore()
	ctx := context.Background()
	synced := baseTime.Add(time.Hour)

	tests := []domain.Source{
		{
			ID: "gl", ProjectID: "p1", Name: "GitLab", Kind: domain.SourceKindIssueTracker, CreatedAt: baseTime,
			IssueTracker: &domain.RemoteConfig{
				Flavour: domain.FlavourGitLab, BaseURL: "https://gitlab.example.com", Project: "group/app", Token: "t",
			},
			LastUpdatedAt: &synced,
		},
		{
			ID: "wiki", ProjectID: "p1", Name: "Wiki", Kind: domain.SourceKindWikiPages, CreatedAt: baseTime,
			Wiki: &domain.RemoteConfig{Flavour: domain.FlavourGitHub, Project: "acme/app"},
		},
		{
			ID: "gdoc", ProjectID: "p1", Name: "Docs", Kind: domain.SourceKindWordProcessorDoc, CreatedAt: baseTime,
			WordProcessor: &domain.DocumentConfig{URL: "https://docs.google.com/document/d/abc"},
		},
	}

	for _, want := range tests {
		t.Run(want.ID, func(t *testing.T) {
			require.NoError(t, sources.Save(ctx, want))

			got, err := sources.Get(ctx, want.ID)
			require.NoError(t, err)
			assert.Equal(t, want.Kind, got.Kind)
			assert.Equal(t, want.IssueTracker, got.IssueTracker)
			assert.Equal(t, want.Wiki, got.Wiki)
			assert.Equal(t, want.WordProcessor, got.WordProcessor)
			assert.NoError(t, got.Validate())
			if want.LastUpdatedAt == nil {
				assert.Nil(t, got.LastUpdatedAt)
			} else {
				require.NotNil(t, got.LastUpdatedAt)
				assert.WithinDuration(t, *want.LastUpdatedAt, *got.LastUpdatedAt, 0)
			}
		})
	}
}

func TestSourceStore_ListAndDelete(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "b")
	seedSource(t, store, "p1", "a")
	seedSource(t, store, "p2", "c")
	sources := store.SourceStore()
	ctx := context.Background()

	all, err := sources.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)

	inP1, err := sources.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, inP1, 2)
	assert.Equal(t, []string{"a", "b"}, []string{inP1[0].ID, inP1[1].ID})

	require.NoError(t, store.DocumentStore().Save(ctx, newDoc("d1", "a", "x")))
	require.NoError(t, sources.Delete(ctx, "a"))

	_, err = sources.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.DocumentStore().GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "documents are removed with their source")
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndFind(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "s1")
	docs := store.DocumentStore()
	ctx := context.Background()

	missing, err := docs.FindByExternalID(ctx, "s1", "42")
	require.NoError(t, err)
	assert.Nil(t, missing)

	doc := newDoc("d1", "s1", "42")
	updated := baseTime.Add(time.Minute)
	doc.UpdatedAt = &updated
	doc.WebURL = "https://example.com/42"
	doc.Closed = true
	require.NoError(t, docs.Save(ctx, doc))

	got, err := docs.FindByExternalID(ctx, "s1", "42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "d1", got.ID)
	assert.Equal(t, "Content d1", got.Content)
	assert.Equal(t, "https://example.com/42", got.WebURL)
	assert.True(t, got.Closed)
	require.NotNil(t, got.UpdatedAt)
	assert.WithinDuration(t, updated, *got.UpdatedAt, 0)
	assert.Nil(t, got.IndexedAt)

	got.Title = "Changed"
	require.NoError(t, docs.Save(ctx, got))
	again, err := docs.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Changed", again.Title)

	list, err := docs.ListDocuments(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, docs.Flush(ctx))
}

func TestDocumentStore_SaveRejects(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "s1")
	docs := store.DocumentStore()
	ctx := context.Background()

	assert.ErrorIs(t, docs.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, docs.Save(ctx, &domain.Document{SourceID: "s1"}), domain.ErrInvalidInput)

	require.NoError(t, docs.Save(ctx, newDoc("d1", "s1", "42")))
	assert.ErrorIs(t, docs.Save(ctx, newDoc("d2", "s1", "42")), domain.ErrAlreadyExists)

	_, err := docs.GetDocument(ctx, "d2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_FindDocumentsNeedingUpdate(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "s1")
	seedSource(t, store, "p1", "s2")
	docs := store.DocumentStore()
	ctx := context.Background()

	open := newDoc("open", "s1", "1")
	closed := newDoc("closed", "s1", "2")
	closed.Closed = true
	other := newDoc("other", "s2", "1")
	for _, d := range []*domain.Document{open, closed, other} {
		require.NoError(t, docs.Save(ctx, d))
	}

	got, err := docs.FindDocumentsNeedingUpdate(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "open", got[0].ID)
}

func TestDocumentStore_FindDocumentsNeedingIndex(t *testing.T) {
	store := setupTestStore(t)
	seedSource(t, store, "p1", "s1")
	seedSource(t, store, "p2", "s2")
	docs := store.DocumentStore()
	ctx := context.Background()

	before := baseTime.Add(-time.Hour)
	after := baseTime.Add(time.Hour)

	never := newDoc("never", "s1", "1")
	stale := newDoc("stale", "s1", "2")
	stale.IndexedAt = &before
	fresh := newDoc("fresh", "s1", "3")
	fresh.IndexedAt = &after
	elsewhere := newDoc("elsewhere", "s2", "1")
	for _, d := range []*domain.Document{never, stale, fresh, elsewhere} {
		require.NoError(t, docs.Save(ctx, d))
	}

	tests := []struct {
		name          string
		includeClosed bool
		want          []string
	}{
		{"only pending", false, []string{"never", "stale"}},
		{"everything", true, []string{"fresh", "never", "stale"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docs.FindDocumentsNeedingIndex(ctx, "p1", tt.includeClosed)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, d := range got {
				ids[i] = d.ID
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}
