package chunker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IQ2i/thot/internal/core/domain"
)

func mustNew(t *testing.T, opts ...Option) *Processor {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := mustNew(t)
		if p.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != domain.DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", domain.DefaultOverlap, p.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		p := mustNew(t, WithChunkSize(500), WithOverlap(100))
		if p.chunkSize != 500 || p.overlap != 100 {
			t.Errorf("expected 500/100, got %d/%d", p.chunkSize, p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		if !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})

	t.Run("zero chunk size", func(t *testing.T) {
		_, err := New(WithChunkSize(0), WithOverlap(0))
		if !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := mustNew(t)
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := mustNew(t)
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "  \n ",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := mustNew(t, WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "This is a small piece of content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small content, got %d", len(chunks))
	}

	if chunks[0].ID != "test-doc-0" {
		t.Errorf("expected ID 'test-doc-0', got '%s'", chunks[0].ID)
	}
	if chunks[0].DocumentID != doc.ID {
		t.Errorf("expected DocumentID '%s', got '%s'", doc.ID, chunks[0].DocumentID)
	}
	if chunks[0].Content != doc.Content {
		t.Errorf("expected content to match document content")
	}
}

func TestProcessor_Process_LargeContent(t *testing.T) {
	p := mustNew(t, WithChunkSize(100), WithOverlap(20))

	content := strings.Repeat("This is a sentence. ", 30)
	doc := &domain.Document{
		ID:      "test-doc",
		Content: content,
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Errorf("expected multiple chunks, got %d", len(chunks))
	}

	seenIDs := make(map[string]bool)
	for i, chunk := range chunks {
		if seenIDs[chunk.ID] {
			t.Errorf("duplicate chunk ID: %s", chunk.ID)
		}
		seenIDs[chunk.ID] = true

		if chunk.Position != i {
			t.Errorf("expected position %d, got %d", i, chunk.Position)
		}
		if chunk.DocumentID != doc.ID {
			t.Errorf("expected DocumentID '%s', got '%s'", doc.ID, chunk.DocumentID)
		}
		if len(chunk.Content) > 100 {
			t.Errorf("chunk %d exceeds chunk size: %d", i, len(chunk.Content))
		}
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := mustNew(t, WithChunkSize(100), WithOverlap(10))

	existingChunks := []domain.Chunk{
		{ID: "existing", Content: "should be ignored"},
	}

	doc := &domain.Document{
		ID:      "test-doc",
		Content: "New content to chunk",
	}

	chunks, err := p.Process(context.Background(), doc, existingChunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Content != "New content to chunk" {
		t.Errorf("expected a single fresh chunk, got %+v", chunks)
	}
}
