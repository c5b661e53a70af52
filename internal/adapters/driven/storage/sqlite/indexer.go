package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure Indexer implements the interface.
var _ driven.Indexer = (*Indexer)(nil)

// Indexer writes chunks to the chunks table.
// When an embedding service is set, vectors are computed for each batch first.
type Indexer struct {
	store    *Store
	embedder driven.EmbeddingService
}

// Indexer returns a chunk indexer backed by this store.
// embedder may be nil.
func (s *Store) Indexer(embedder driven.EmbeddingService) *Indexer {
	return &Indexer{store: s, embedder: embedder}
}

// Index stores one batch of chunks.
//
// A chunk at position 0 starts a new generation of its document: the chunks
// left from the previous ingestion of that document are removed first.
func (i *Indexer) Index(ctx context.Context, batch []domain.Chunk) error {
	if len(batch) == 0 {
		return nil
	}

	if i.embedder != nil {
		texts := make([]string, len(batch))
		for n := range batch {
			texts[n] = batch[n].Content
		}
		vectors, err := i.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding chunks: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding chunks: got %d vectors for %d chunks", len(vectors), len(batch))
		}
		for n := range batch {
			batch[n].Embedding = vectors[n]
		}
	}

	tx, err := i.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	reset, err := tx.PrepareContext(ctx, "DELETE FROM chunks WHERE document_id = ?")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer reset.Close()

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			content = excluded.content,
			position = excluded.position,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer insert.Close()

	for _, chunk := range batch {
		if chunk.Position == 0 {
			if _, err := reset.ExecContext(ctx, chunk.DocumentID); err != nil {
				return fmt.Errorf("clearing chunks of %s: %w", chunk.DocumentID, err)
			}
		}

		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}
		if _, err := insert.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.Position, float32SliceToBytes(chunk.Embedding), string(metadataJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Clear deletes the chunks of the given documents.
func (i *Indexer) Clear(ctx context.Context, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	tx, err := i.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, id := range documentIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", id); err != nil {
			return fmt.Errorf("clearing chunks of %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Chunks returns the stored chunks of a document ordered by position.
func (i *Indexer) Chunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := i.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, embedding, metadata
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embedding []byte
		var metadataJSON string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &chunk.Position,
			&embedding, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embedding)
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling chunk metadata: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}
