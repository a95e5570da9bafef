package cli

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	mu        sync.Mutex
	documents []domain.Document
	err       error
	added     []string
	removed   []string
}

func (m *mockDocumentService) Add(_ context.Context, title, uri, mimeType string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if title == "" {
		title = "untitled"
	}
	if mimeType == "" {
		mimeType = domain.MIMETypePlainText
	}
	m.added = append(m.added, uri)
	doc := domain.Document{ID: "doc-new", Title: title, URI: uri, MIMEType: mimeType}
	m.documents = append(m.documents, doc)
	return &doc, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, id)
	return m.err
}

// mockAcronymService is a mock implementation of driving.AcronymService.
type mockAcronymService struct {
	mu       sync.Mutex
	entry    *domain.AggregateEntry
	report   *domain.RefreshReport
	err      error
	resolved []string
	forced   []bool
	verified map[string]string
}

func (m *mockAcronymService) Resolve(_ context.Context, id string, force bool) (*driving.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = append(m.resolved, id)
	m.forced = append(m.forced, force)
	if m.err != nil {
		return nil, m.err
	}
	state := domain.ResolveStateCached
	if force {
		state = domain.ResolveStateUpdated
	}
	return &driving.Resolution{
		DocumentID: id,
		Acronyms: map[string]string{
			"SVM":  "Support Vector Machine",
			"LSTM": "Long Short Term Memory",
		},
		ShortForms: []string{"GPU", "LSTM", "SVM"},
		State:      state,
		Version:    domain.EngineVersion,
	}, nil
}

func (m *mockAcronymService) SetVerified(_ context.Context, short, long string) error {
	if m.err != nil {
		return m.err
	}
	if m.verified == nil {
		m.verified = make(map[string]string)
	}
	m.verified[short] = long
	return nil
}

func (m *mockAcronymService) Lookup(_ context.Context, _ string) (*domain.AggregateEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.entry == nil {
		return nil, domain.ErrNotFound
	}
	return m.entry, nil
}

func (m *mockAcronymService) RefreshStale(_ context.Context) (*domain.RefreshReport, error) {
	return m.report, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	values map[string]string
	keys   []string
	err    error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		keys: []string{"engine.window_size", "engine.require_capitalized", "refresh.interval_minutes"},
		values: map[string]string{
			"engine.window_size":         "10",
			"engine.require_capitalized": "true",
			"refresh.interval_minutes":   "0",
		},
	}
}

func (m *mockSettingsService) Get() (*domain.EngineSettings, error) {
	s := domain.DefaultEngineSettings()
	return &s, m.err
}

func (m *mockSettingsService) Save(_ *domain.EngineSettings) error { return m.err }

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.values[key]; !ok {
		return domain.ErrInvalidInput
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	return m.values, m.err
}

func (m *mockSettingsService) Keys() []string { return m.keys }

func (m *mockSettingsService) GetDefaults() domain.EngineSettings {
	return domain.DefaultEngineSettings()
}

// mockRefreshHistory is a mock implementation of driving.RefreshHistory.
type mockRefreshHistory struct {
	runs  []domain.RefreshReport
	err   error
	limit int
}

func (m *mockRefreshHistory) History(_ context.Context, limit int) ([]domain.RefreshReport, error) {
	m.limit = limit
	return m.runs, m.err
}

// mockScheduler is a mock implementation of driving.Scheduler.
type mockScheduler struct {
	interval time.Duration
	report   *domain.RefreshReport
	err      error
	started  bool
	ranOnce  bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	m.started = true
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockScheduler) Stop() error { return nil }

func (m *mockScheduler) RunOnce(_ context.Context) (*domain.RefreshReport, error) {
	m.ranOnce = true
	return m.report, m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	documents *mockDocumentService
	acronyms  *mockAcronymService
	settings  *mockSettingsService
	history   *mockRefreshHistory
	scheduler *mockScheduler
}

// setupTestServices installs mocks and returns them with a cleanup func.
func setupTestServices() (*testServices, func()) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := &testServices{
		documents: &mockDocumentService{documents: []domain.Document{
			{ID: "doc-1", Title: "Test Document 1", URI: "/papers/one.pdf", MIMEType: domain.MIMETypePDF, CreatedAt: created},
			{ID: "doc-2", Title: "Test Document 2", URI: "https://example.com/two.txt", MIMEType: domain.MIMETypePlainText},
		}},
		acronyms: &mockAcronymService{},
		settings: newMockSettingsService(),
		history:  &mockRefreshHistory{},
		scheduler: &mockScheduler{report: &domain.RefreshReport{
			Refreshed: 2,
			StartedAt: created,
			EndedAt:   created.Add(1500 * time.Millisecond),
		}},
	}

	oldDocs, oldAcronyms, oldSettings := documentService, acronymService, settingsService
	oldHistory, oldScheduler := refreshHistory, newScheduler
	oldTypes := supportedMIMETypes

	documentService = ts.documents
	acronymService = ts.acronyms
	settingsService = ts.settings
	refreshHistory = ts.history
	newScheduler = func(interval time.Duration) driving.Scheduler {
		ts.scheduler.interval = interval
		return ts.scheduler
	}

	return ts, func() {
		documentService, acronymService, settingsService = oldDocs, oldAcronyms, oldSettings
		refreshHistory, newScheduler = oldHistory, oldScheduler
		setSupportedMIMETypes(oldTypes)
	}
}
