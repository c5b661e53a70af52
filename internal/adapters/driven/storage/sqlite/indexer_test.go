package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 0.5}
	}
	return out, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake" }

func chunk(docID string, position int, content string) domain.Chunk {
	return domain.Chunk{
		ID:         docID + "-" + string(rune('0'+position)),
		DocumentID: docID,
		Content:    content,
		Position:   position,
		Metadata:   map[string]any{"title": "T", "closed": false},
	}
}

func setupIndexedDoc(t *testing.T) *Store {
	t.Helper()
	store := setupTestStore(t)
	seedSource(t, store, "p1", "s1")
	require.NoError(t, store.DocumentStore().Save(context.Background(), newDoc("d1", "s1", "1")))
	return store
}

func TestIndexer_StoresChunks(t *testing.T) {
	store := setupIndexedDoc(t)
	idx := store.Indexer(nil)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, nil))
	require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "alpha"), chunk("d1", 1, "beta")}))

	got, err := idx.Chunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Content)
	assert.Equal(t, 1, got[1].Position)
	assert.Equal(t, "T", got[0].Metadata["title"])
	assert.Nil(t, got[0].Embedding)
}

func TestIndexer_NewGenerationReplacesChunks(t *testing.T) {
	store := setupIndexedDoc(t)
	idx := store.Indexer(nil)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "a"), chunk("d1", 1, "b"), chunk("d1", 2, "c")}))
	require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "only")}))

	got, err := idx.Chunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Content)
}

func TestIndexer_Embeddings(t *testing.T) {
	store := setupIndexedDoc(t)
	ctx := context.Background()

	t.Run("vectors are stored", func(t *testing.T) {
		embedder := &fakeEmbedder{}
		idx := store.Indexer(embedder)

		require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "four")}))
		assert.Equal(t, 1, embedder.calls)

		got, err := idx.Chunks(ctx, "d1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []float32{4, 0.5}, got[0].Embedding)
	})

	t.Run("embedding failure stores nothing", func(t *testing.T) {
		idx := store.Indexer(&fakeEmbedder{err: errors.New("model offline")})

		err := idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "replacement")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model offline")

		got, err := idx.Chunks(ctx, "d1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "four", got[0].Content)
	})
}

func TestIndexer_Clear(t *testing.T) {
	store := setupIndexedDoc(t)
	idx := store.Indexer(nil)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "a"), chunk("d1", 1, "b")}))
	require.NoError(t, idx.Clear(ctx, nil))
	require.NoError(t, idx.Clear(ctx, []string{"d1", "unknown"}))

	got, err := idx.Chunks(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDocumentStore_DeleteCascadesToChunks(t *testing.T) {
	store := setupIndexedDoc(t)
	idx := store.Indexer(nil)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, []domain.Chunk{chunk("d1", 0, "a")}))
	require.NoError(t, store.DocumentStore().Delete(ctx, "d1"))

	_, err := store.DocumentStore().GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := idx.Chunks(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, store.DocumentStore().Delete(ctx, "d1"), domain.ErrNotFound)
}
