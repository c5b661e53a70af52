package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

// mockProcessor is a test processor that returns predefined chunks.
type mockProcessor struct {
	name   string
	chunks []domain.Chunk
	err    error
	seen   []domain.Chunk
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	m.seen = chunks
	if m.err != nil {
		return nil, m.err
	}
	if m.chunks != nil {
		return m.chunks, nil
	}
	return chunks, nil
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	p.Add(&mockProcessor{name: "test"})
	assert.Equal(t, 1, p.Len())
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	_, err := NewPipeline().Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_Process_ChainsProcessors(t *testing.T) {
	created := []domain.Chunk{{ID: "doc-0", Content: "test"}}
	first := &mockProcessor{name: "first", chunks: created}
	second := &mockProcessor{name: "second"}

	chunks, err := NewPipeline(first, second).Process(context.Background(), &domain.Document{ID: "doc"})
	require.NoError(t, err)
	assert.Nil(t, first.seen)
	assert.Equal(t, created, second.seen)
	assert.Equal(t, created, chunks)
}

func TestPipeline_Process_StopsOnEmptyFirstStage(t *testing.T) {
	first := &mockProcessor{name: "first", chunks: []domain.Chunk{}}
	second := &mockProcessor{name: "second", err: errors.New("must not run")}

	chunks, err := NewPipeline(first, second).Process(context.Background(), &domain.Document{ID: "doc"})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestPipeline_Process_Error(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&mockProcessor{name: "broken", err: boom})

	_, err := p.Process(context.Background(), &domain.Document{ID: "doc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "processor broken")
}

func TestNewDefaultPipeline(t *testing.T) {
	settings := domain.IngestSettings{ChunkSize: 40, Overlap: 10, BatchSize: 25}
	p, err := NewDefaultPipeline(settings)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	doc := &domain.Document{
		ID:      "doc-1",
		Title:   "Login bug",
		WebURL:  "https://gitlab.example.com/app/-/issues/1",
		Content: "First paragraph is here.\nSecond paragraph is here.",
	}

	chunks, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "doc-1-0", chunks[0].ID)
	assert.Equal(t, "Title: Login bug\nSource: https://gitlab.example.com/app/-/issues/1\nContent: First paragraph is here.", chunks[0].Content)
	assert.Equal(t, "Second paragraph is here.", chunks[1].Metadata["content"])
}

func TestNewDefaultPipeline_InvalidSettings(t *testing.T) {
	_, err := NewDefaultPipeline(domain.IngestSettings{ChunkSize: 10, Overlap: 10, BatchSize: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
