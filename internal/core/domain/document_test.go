package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_NeedsIndex(t *testing.T) {
	synced := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := synced.Add(-time.Hour)
	after := synced.Add(time.Hour)

	tests := []struct {
		name      string
		indexedAt *time.Time
		want      bool
	}{
		{"never indexed", nil, true},
		{"synced after indexing", &before, true},
		{"indexed after sync", &after, false},
		{"indexed at sync time", &synced, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{SyncedAt: synced, IndexedAt: tt.indexedAt}
			assert.Equal(t, tt.want, doc.NeedsIndex())
		})
	}
}

// TestChunk_Fields tests Chunk structure fields
func TestChunk_Fields(t *testing.T) {
	chunk := Chunk{
		ID:         "doc-1-0",
		DocumentID: "doc-1",
		Content:    "Title: A\nSource: https://example.com\nContent: text",
		Position:   0,
		Metadata:   map[string]any{"closed": false},
	}

	assert.Equal(t, "doc-1-0", chunk.ID)
	assert.Equal(t, "doc-1", chunk.DocumentID)
	assert.Equal(t, 0, chunk.Position)
	assert.Equal(t, false, chunk.Metadata["closed"])
	assert.Nil(t, chunk.Embedding)
}
