package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `d.id, d.source_id, d.external_id, d.title, d.content, d.web_url, d.closed,
	d.created_at, d.updated_at, d.synced_at, d.indexed_at`

// FindByExternalID returns the document of a source with the given external id, or nil.
func (s *documentStore) FindByExternalID(ctx context.Context, sourceID, externalID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents d WHERE d.source_id = ? AND d.external_id = ?",
		sourceID, externalID)
	doc, err := scanDocument(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// FindDocumentsNeedingUpdate returns the open documents of a source.
func (s *documentStore) FindDocumentsNeedingUpdate(ctx context.Context, sourceID string) ([]domain.Document, error) {
	return s.query(ctx,
		"SELECT "+documentColumns+" FROM documents d WHERE d.source_id = ? AND d.closed = 0 ORDER BY d.created_at, d.id",
		sourceID)
}

// FindDocumentsNeedingIndex returns the documents of a project that need indexing,
// or all of them when includeClosed is set.
func (s *documentStore) FindDocumentsNeedingIndex(ctx context.Context, projectID string, includeClosed bool) ([]domain.Document, error) {
	docs, err := s.query(ctx, `
		SELECT `+documentColumns+`
		FROM documents d JOIN sources s ON s.id = d.source_id
		WHERE s.project_id = ?
		ORDER BY d.created_at, d.id
	`, projectID)
	if err != nil || includeClosed {
		return docs, err
	}

	pending := docs[:0]
	for i := range docs {
		if docs[i].NeedsIndex() {
			pending = append(pending, docs[i])
		}
	}
	return pending, nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents d WHERE d.id = ?", id)
	doc, err := scanDocument(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns the documents of a source.
func (s *documentStore) ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error) {
	return s.query(ctx,
		"SELECT "+documentColumns+" FROM documents d WHERE d.source_id = ? ORDER BY d.created_at, d.id",
		sourceID)
}

// Save stores or updates a document. (SourceID, ExternalID) stays unique.
func (s *documentStore) Save(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("saving document: %w", domain.ErrInvalidInput)
	}

	var owner string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id FROM documents WHERE source_id = ? AND external_id = ? AND id <> ?",
		doc.SourceID, doc.ExternalID, doc.ID).Scan(&owner)
	switch {
	case err == nil:
		return fmt.Errorf("document %s/%s: %w", doc.SourceID, doc.ExternalID, domain.ErrAlreadyExists)
	case !isNoRows(err):
		return fmt.Errorf("checking document key: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_id, external_id, title, content, web_url, closed,
			created_at, updated_at, synced_at, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			web_url = excluded.web_url,
			closed = excluded.closed,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at,
			indexed_at = excluded.indexed_at
	`, doc.ID, doc.SourceID, doc.ExternalID, doc.Title, doc.Content, doc.WebURL, doc.Closed,
		doc.CreatedAt.UTC(), nullTime(doc.UpdatedAt), doc.SyncedAt.UTC(), nullTime(doc.IndexedAt))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Delete removes a document. Its chunks go with it through the foreign key.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Flush checkpoints the write-ahead log into the database file.
func (s *documentStore) Flush(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "PRAGMA wal_checkpoint(PASSIVE)"); err != nil {
		return fmt.Errorf("flushing documents: %w", err)
	}
	return nil
}

func (s *documentStore) query(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// scanDocument returns sql.ErrNoRows unwrapped so callers can map it.
func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var updatedAt, indexedAt sql.NullTime
	err := row.Scan(&doc.ID, &doc.SourceID, &doc.ExternalID, &doc.Title, &doc.Content, &doc.WebURL,
		&doc.Closed, &doc.CreatedAt, &updatedAt, &doc.SyncedAt, &indexedAt)
	if err != nil {
		return nil, err
	}
	doc.UpdatedAt = timePtr(updatedAt)
	doc.IndexedAt = timePtr(indexedAt)
	return &doc, nil
}
