package cli

import (
	"context"
	"time"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/ports/driving"
)

type mockProjectService struct {
	projects []domain.Project
	addErr   error
}

func (m *mockProjectService) Add(_ context.Context, code, name string) (*domain.Project, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	if name == "" {
		name = code
	}
	p := domain.Project{ID: "proj-" + code, Code: code, Name: name}
	m.projects = append(m.projects, p)
	return &p, nil
}

func (m *mockProjectService) Resolve(_ context.Context, ref string) (*domain.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == ref || m.projects[i].Code == ref {
			return &m.projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProjectService) List(_ context.Context) ([]domain.Project, error) {
	return m.projects, nil
}

type mockSourceService struct {
	sources []domain.Source
	added   []domain.Source
	removed []string
}

func (m *mockSourceService) Add(_ context.Context, source domain.Source) (*domain.Source, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	source.ID = "src-new"
	m.added = append(m.added, source)
	return &source, nil
}

func (m *mockSourceService) Get(_ context.Context, id string) (*domain.Source, error) {
	for i := range m.sources {
		if m.sources[i].ID == id {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, nil
}

func (m *mockSourceService) ListByProject(_ context.Context, projectID string) ([]domain.Source, error) {
	var out []domain.Source
	for _, s := range m.sources {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSourceService) Remove(_ context.Context, id string) error {
	if _, err := m.Get(context.Background(), id); err != nil {
		return err
	}
	m.removed = append(m.removed, id)
	return nil
}

type mockDocumentService struct {
	docs    []domain.Document
	added   []domain.Document
	edited  []domain.Document
	removed []string
	err     error
}

func (m *mockDocumentService) ListBySource(_ context.Context, sourceID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range m.docs {
		if d.SourceID == sourceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) AddManual(_ context.Context, sourceID, title, content string) (*domain.Document, error) {
	doc := domain.Document{ID: "doc-new", SourceID: sourceID, Title: title, Content: content}
	m.added = append(m.added, doc)
	return &doc, nil
}

func (m *mockDocumentService) EditManual(_ context.Context, id, title, content string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := domain.Document{ID: id, Title: title, Content: content}
	m.edited = append(m.edited, doc)
	return &doc, nil
}

func (m *mockDocumentService) RemoveManual(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

type syncCall struct {
	method        string
	id            string
	includeClosed bool
}

type mockSyncOrchestrator struct {
	calls []syncCall
	err   error
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, sourceID string, includeClosed bool) error {
	m.calls = append(m.calls, syncCall{"Sync", sourceID, includeClosed})
	return m.err
}

func (m *mockSyncOrchestrator) SyncProject(_ context.Context, projectID string, includeClosed bool) error {
	m.calls = append(m.calls, syncCall{"SyncProject", projectID, includeClosed})
	return m.err
}

func (m *mockSyncOrchestrator) SyncAll(_ context.Context, includeClosed bool) error {
	m.calls = append(m.calls, syncCall{"SyncAll", "", includeClosed})
	return m.err
}

type mockIngestService struct {
	calls []syncCall
	err   error
}

func (m *mockIngestService) IngestProject(_ context.Context, projectID string, includeClosed bool) (*driving.IngestReport, error) {
	m.calls = append(m.calls, syncCall{"IngestProject", projectID, includeClosed})
	if m.err != nil {
		return nil, m.err
	}
	return &driving.IngestReport{ProjectID: projectID, Documents: 2, Chunks: 30, Batches: 2}, nil
}

func (m *mockIngestService) IngestAll(_ context.Context, includeClosed bool) ([]driving.IngestReport, error) {
	m.calls = append(m.calls, syncCall{"IngestAll", "", includeClosed})
	return []driving.IngestReport{{ProjectID: "proj-app", Documents: 1, Chunks: 3, Batches: 1}}, m.err
}

// fixture installs mock services and resets command flags.
type fixture struct {
	projects  *mockProjectService
	sources   *mockSourceService
	documents *mockDocumentService
	sync      *mockSyncOrchestrator
	ingest    *mockIngestService
	config    *mockConfigStore
}

type mockConfigStore struct {
	values map[string]any
	setErr error
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	n, _ := m.values[key].(int)
	return n
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	f, _ := m.values[key].(float64)
	return f
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.values[key].(bool)
	return b
}

func (m *mockConfigStore) GetDuration(key string) time.Duration {
	d, _ := time.ParseDuration(m.GetString(key))
	return d
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string { return "/home/me/.thot/config.toml" }

func setupServices() (*fixture, func()) {
	f := &fixture{
		projects:  &mockProjectService{projects: []domain.Project{{ID: "proj-app", Code: "app", Name: "App"}}},
		sources:   &mockSourceService{},
		documents: &mockDocumentService{},
		sync:      &mockSyncOrchestrator{},
		ingest:    &mockIngestService{},
		config:    &mockConfigStore{values: map[string]any{"sync.workers": int64(4)}},
	}

	old := Services{
		Projects:  projectService,
		Sources:   sourceService,
		Documents: documentService,
		Sync:      syncOrchestrator,
		Ingest:    ingestService,
		Config:    configStore,
		Settings:  syncSettings,
	}
	SetServices(Services{
		Projects:  f.projects,
		Sources:   f.sources,
		Documents: f.documents,
		Sync:      f.sync,
		Ingest:    f.ingest,
		Config:    f.config,
		Settings:  domain.DefaultSyncSettings(),
	})
	resetFlags()

	return f, func() {
		SetServices(old)
		resetFlags()
	}
}

func resetFlags() {
	sourceProject, sourceName, sourceFlavour = "", "", ""
	sourceBaseURL, sourceRepo, sourceDocURL, sourceToken = "", "", "", ""
	documentTitle, documentFile, documentShowContent = "", "-", false
	editTitle, editFile = "", ""
	syncAll, syncSource, syncIncludeClosed = false, "", false
	indexAll, indexIncludeClosed = false, false
}

var _ driving.ProjectService = (*mockProjectService)(nil)
var _ driving.SourceService = (*mockSourceService)(nil)
var _ driving.DocumentService = (*mockDocumentService)(nil)
var _ driving.SyncOrchestrator = (*mockSyncOrchestrator)(nil)
var _ driving.IngestService = (*mockIngestService)(nil)
var _ driven.ConfigStore = (*mockConfigStore)(nil)
