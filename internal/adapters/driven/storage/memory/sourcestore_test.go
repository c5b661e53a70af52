package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

func TestSourceStore_CRUD(t *testing.T) {
	store := NewSourceStore()
	ctx := context.Background()

	src := domain.Source{
		ID:        "src-1",
		ProjectID: "proj-1",
		Name:      "Tracker",
		Kind:      domain.SourceKindIssueTracker,
		IssueTracker: &domain.RemoteConfig{
			Flavour: domain.FlavourGitLab,
			BaseURL: "https://gitlab.example.com",
			Project: "group/app",
		},
	}
	require.NoError(t, store.Save(ctx, src))

	got, err := store.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, "group/app", got.IssueTracker.Project)

	require.NoError(t, store.Delete(ctx, "src-1"))
	_, err = store.Get(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceStore_ListByProject(t *testing.T) {
	store := NewSourceStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Source{ID: "3", ProjectID: "p1", Name: "zeta"}))
	require.NoError(t, store.Save(ctx, domain.Source{ID: "1", ProjectID: "p1", Name: "alpha"}))
	require.NoError(t, store.Save(ctx, domain.Source{ID: "2", ProjectID: "p2", Name: "beta"}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)

	p1, err := store.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.Equal(t, []string{"alpha", "zeta"}, []string{p1[0].Name, p1[1].Name})
}

func TestProjectStore(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Project{ID: "p1", Code: "web", Name: "Website"}))
	require.NoError(t, store.Save(ctx, domain.Project{ID: "p2", Code: "api", Name: "API"}))

	err := store.Save(ctx, domain.Project{ID: "p3", Code: "web"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := store.GetByCode(ctx, "web")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = store.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "api", list[0].Code)
}

func TestIndexer_RecordsBatches(t *testing.T) {
	idx := NewIndexer()
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, []domain.Chunk{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, idx.Index(ctx, []domain.Chunk{{ID: "c"}}))

	assert.Len(t, idx.Batches(), 2)
	assert.Len(t, idx.Chunks(), 3)

	idx.FailWith(assert.AnError)
	assert.ErrorIs(t, idx.Index(ctx, nil), assert.AnError)
}
