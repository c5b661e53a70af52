package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// ==================== Project Store ====================

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

// Save stores or updates a project. Codes are unique.
func (s *projectStore) Save(ctx context.Context, project domain.Project) error {
	var owner string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id FROM projects WHERE code = ? AND id <> ?", project.Code, project.ID).Scan(&owner)
	switch {
	case err == nil:
		return fmt.Errorf("project code %q: %w", project.Code, domain.ErrAlreadyExists)
	case !isNoRows(err):
		return fmt.Errorf("checking project code: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO projects (id, code, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name
	`, project.ID, project.Code, project.Name, project.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (s *projectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, code, name, created_at FROM projects WHERE id = ?", id)
	return scanProject(row)
}

// GetByCode retrieves a project by its code.
func (s *projectStore) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, code, name, created_at FROM projects WHERE code = ?", code)
	return scanProject(row)
}

// List returns all projects ordered by code.
func (s *projectStore) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, code, name, created_at FROM projects ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project //nolint:prealloc // size unknown from query
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(&project.ID, &project.Code, &project.Name, &project.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &project, nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// sourceConfig is the JSON form of the variant configuration.
type sourceConfig struct {
	IssueTracker  *remoteConfig   `json:"issue_tracker,omitempty"`
	Wiki          *remoteConfig   `json:"wiki,omitempty"`
	WordProcessor *documentConfig `json:"word_processor,omitempty"`
}

type remoteConfig struct {
	Flavour string `json:"flavour"`
	BaseURL string `json:"base_url,omitempty"`
	Project string `json:"project"`
	Token   string `json:"token,omitempty"`
}

type documentConfig struct {
	URL string `json:"url"`
}

func toRemoteConfig(c *domain.RemoteConfig) *remoteConfig {
	if c == nil {
		return nil
	}
	return &remoteConfig{Flavour: string(c.Flavour), BaseURL: c.BaseURL, Project: c.Project, Token: c.Token}
}

func (c *remoteConfig) toDomain() *domain.RemoteConfig {
	if c == nil {
		return nil
	}
	return &domain.RemoteConfig{Flavour: domain.Flavour(c.Flavour), BaseURL: c.BaseURL, Project: c.Project, Token: c.Token}
}

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	cfg := sourceConfig{
		IssueTracker: toRemoteConfig(source.IssueTracker),
		Wiki:         toRemoteConfig(source.Wiki),
	}
	if source.WordProcessor != nil {
		cfg.WordProcessor = &documentConfig{URL: source.WordProcessor.URL}
	}
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, project_id, name, kind, config, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			name = excluded.name,
			kind = excluded.kind,
			config = excluded.config,
			last_updated_at = excluded.last_updated_at
	`, source.ID, source.ProjectID, source.Name, string(source.Kind), string(configJSON),
		source.CreatedAt.UTC(), nullTime(source.LastUpdatedAt))
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

const sourceColumns = "id, project_id, name, kind, config, created_at, last_updated_at"

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	return scanSource(row)
}

// Delete removes a source and its documents.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources ordered by name.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	return s.query(ctx, "SELECT "+sourceColumns+" FROM sources ORDER BY name, id")
}

// ListByProject returns the sources of a project ordered by name.
func (s *sourceStore) ListByProject(ctx context.Context, projectID string) ([]domain.Source, error) {
	return s.query(ctx, "SELECT "+sourceColumns+" FROM sources WHERE project_id = ? ORDER BY name, id", projectID)
}

func (s *sourceStore) query(ctx context.Context, query string, args ...any) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

func scanSource(row rowScanner) (*domain.Source, error) {
	var source domain.Source
	var kind, configJSON string
	var lastUpdatedAt sql.NullTime
	if err := row.Scan(&source.ID, &source.ProjectID, &source.Name, &kind, &configJSON,
		&source.CreatedAt, &lastUpdatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	var cfg sourceConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	source.Kind = domain.SourceKind(kind)
	source.IssueTracker = cfg.IssueTracker.toDomain()
	source.Wiki = cfg.Wiki.toDomain()
	if cfg.WordProcessor != nil {
		source.WordProcessor = &domain.DocumentConfig{URL: cfg.WordProcessor.URL}
	}
	source.LastUpdatedAt = timePtr(lastUpdatedAt)
	return &source, nil
}
