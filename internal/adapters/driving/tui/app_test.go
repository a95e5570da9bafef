package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/acronyms/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Documents: &MockDocumentService{Docs: []domain.Document{
			{ID: "doc-1", Title: "Support Vector Networks", URI: "/papers/svm.pdf"},
		}},
		Acronyms: &MockAcronymService{},
	})
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.True(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Documents: &MockDocumentService{}})

	assert.ErrorIs(t, err, ErrMissingAcronymService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Documents: &MockDocumentService{}, Acronyms: &MockAcronymService{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Documents: &MockDocumentService{}, Acronyms: &MockAcronymService{}})
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_DocumentSelected_ShowsResolution(t *testing.T) {
	app := newTestApp(t)
	doc := domain.Document{ID: "doc-1", Title: "Support Vector Networks"}

	_, cmd := app.Update(messages.DocumentSelected{Document: doc, Force: true})

	assert.Equal(t, messages.ViewResolution, app.CurrentView())
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.ResolutionLoaded)
	require.True(t, ok)
	assert.Equal(t, domain.ResolveStateUpdated, loaded.Resolution.State)

	app.Update(loaded)
	view := app.View()
	assert.Contains(t, view, "Support Vector Networks")
	assert.Contains(t, view, "Support Vector Machine")
	assert.Contains(t, view, "(unresolved)")
}

func TestApp_BackFromResolution(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.DocumentSelected{Document: domain.Document{ID: "doc-1"}})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "force refresh")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.Equal(t, boom, app.Err())
	assert.Contains(t, app.View(), "boom")
}

func TestApp_DocumentsLoaded(t *testing.T) {
	app := newTestApp(t)

	app.Update(messages.DocumentsLoaded{Documents: []domain.Document{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
	}})

	view := app.View()
	assert.Contains(t, view, "Documents (2)")
	assert.Contains(t, view, "Alpha")
}
