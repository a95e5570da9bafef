// Package documents provides the documents list view component for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// ActionOption represents a document action.
type ActionOption int

const (
	ActionResolve ActionOption = iota
	ActionForceResolve
	ActionRemove
	ActionCancel
)

var actionLabels = []struct {
	action ActionOption
	label  string
}{
	{ActionResolve, "Show Acronyms"},
	{ActionForceResolve, "Recompute Acronyms"},
	{ActionRemove, "Remove"},
	{ActionCancel, "Cancel"},
}

// View is the documents list view.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	keys            *keymap.KeyMap
	documentService driving.DocumentService

	documents    []domain.Document
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		keys:            keymap.DefaultKeyMap(),
		documentService: documentService,
		documents:       []domain.Document{},
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDocuments()
}

// loadDocuments returns a command that lists all documents.
func (v *View) loadDocuments() tea.Cmd {
	ctx, svc := v.ctx, v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("document service not available")}
		}
		docs, err := svc.List(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.documents = msg.Documents
		v.err = nil
		if v.selected >= len(v.documents) {
			v.selected = max(0, len(v.documents)-1)
		}
		v.adjustScroll()
		return v, nil

	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.loading = true
		return v, v.loadDocuments()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keys.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keys.Select):
		if len(v.documents) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionResolve
		}
	case keymap.Matches(k, v.keys.Reload):
		v.loading = true
		return v, v.loadDocuments()
	case keymap.Matches(k, v.keys.Remove):
		if doc := v.SelectedDocument(); doc != nil {
			return v, v.removeDocument(doc.ID)
		}
	case keymap.Matches(k, v.keys.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(k, v.keys.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Up):
		if v.menuSelected > ActionResolve {
			v.menuSelected--
		}
	case keymap.Matches(k, v.keys.Down):
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case keymap.Matches(k, v.keys.Select):
		return v.handleMenuSelect()
	case keymap.Matches(k, v.keys.Back):
		v.showingMenu = false
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	v.showingMenu = false
	doc := v.SelectedDocument()
	if doc == nil {
		return v, nil
	}
	selected := *doc

	switch v.menuSelected {
	case ActionResolve, ActionForceResolve:
		force := v.menuSelected == ActionForceResolve
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: selected, Force: force}
		}
	case ActionRemove:
		return v, v.removeDocument(selected.ID)
	case ActionCancel:
	}

	return v, nil
}

// removeDocument returns a command that unregisters the document.
func (v *View) removeDocument(docID string) tea.Cmd {
	ctx, svc := v.ctx, v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentRemoved{DocumentID: docID, Err: fmt.Errorf("document service not available")}
		}
		return messages.DocumentRemoved{DocumentID: docID, Err: svc.Remove(ctx, docID)}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// title, separator, help and padding
	const reserved = 6
	return max(1, v.height-reserved)
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents registered. Add one with: acronyms document add <uri>"))
	case v.showingMenu:
		b.WriteString(v.renderActionMenu())
		return b.String()
	default:
		b.WriteString(v.renderList())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.DocumentsHelp())))
	return b.String()
}

// renderList renders the visible window of documents.
func (v *View) renderList() string {
	var b strings.Builder
	visibleItems := v.visibleItemCount()
	end := min(v.scrollOffset+visibleItems, len(v.documents))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i]))
		b.WriteString("\n")
	}
	if len(v.documents) > visibleItems {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.documents))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	width := max(10, v.width/2-4)
	title := doc.Title
	if title == "" {
		title = doc.ID
	}
	if len(title) > width {
		title = title[:width-3] + "..."
	}
	uri := doc.URI
	if len(uri) > width {
		uri = "..." + uri[len(uri)-width+3:]
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, width, title, uri))
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, width, title)) +
		v.styles.Muted.Render(uri)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if doc := v.SelectedDocument(); doc != nil {
		title := doc.Title
		if title == "" {
			title = doc.ID
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", title)))
		b.WriteString("\n\n")
	}

	for _, opt := range actionLabels {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
