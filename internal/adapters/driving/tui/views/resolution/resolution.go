// Package resolution provides the view listing a document's resolved acronyms.
package resolution

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// View shows the short forms of one document and their long forms.
type View struct {
	ctx            context.Context
	styles         *styles.Styles
	keys           *keymap.KeyMap
	acronymService driving.AcronymService

	document     *domain.Document
	resolution   *driving.Resolution
	votes        *messages.VotesLoaded
	selected     int
	scrollOffset int
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a new resolution view.
func NewView(s *styles.Styles, acronymService driving.AcronymService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:            context.Background(),
		styles:         s,
		keys:           keymap.DefaultKeyMap(),
		acronymService: acronymService,
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetDocument switches the view to doc and resolves it.
func (v *View) SetDocument(doc domain.Document, force bool) tea.Cmd {
	v.document = &doc
	v.resolution = nil
	v.votes = nil
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.resolve(force)
}

// resolve returns a command that resolves the current document.
func (v *View) resolve(force bool) tea.Cmd {
	ctx, svc := v.ctx, v.acronymService
	if v.document == nil {
		return nil
	}
	id := v.document.ID
	return func() tea.Msg {
		if svc == nil {
			return messages.ResolutionLoaded{DocumentID: id, Err: fmt.Errorf("acronym service not available")}
		}
		res, err := svc.Resolve(ctx, id, force)
		return messages.ResolutionLoaded{DocumentID: id, Resolution: res, Err: err}
	}
}

// lookup returns a command that loads the vote tally of a short form.
func (v *View) lookup(short string) tea.Cmd {
	ctx, svc := v.ctx, v.acronymService
	return func() tea.Msg {
		if svc == nil {
			return messages.VotesLoaded{ShortForm: short, Err: fmt.Errorf("acronym service not available")}
		}
		entry, err := svc.Lookup(ctx, short)
		return messages.VotesLoaded{ShortForm: short, Entry: entry, Err: err}
	}
}

// Update handles messages for the resolution view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResolutionLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		v.resolution = msg.Resolution
		if n := len(v.ShortForms()); v.selected >= n {
			v.selected = max(0, n-1)
		}

	case messages.VotesLoaded:
		if msg.ShortForm == v.SelectedShortForm() {
			v.votes = &msg
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Up):
		if v.selected > 0 {
			v.selected--
			v.votes = nil
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keys.Down):
		if v.selected < len(v.ShortForms())-1 {
			v.selected++
			v.votes = nil
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keys.Select):
		if short := v.SelectedShortForm(); short != "" {
			return v, v.lookup(short)
		}
	case keymap.Matches(k, v.keys.Force):
		v.loading = true
		v.votes = nil
		return v, v.resolve(true)
	case keymap.Matches(k, v.keys.Reload):
		v.loading = true
		return v, v.resolve(false)
	case keymap.Matches(k, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	case keymap.Matches(k, v.keys.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// ShortForms returns the detected short forms in display order.
func (v *View) ShortForms() []string {
	if v.resolution == nil {
		return nil
	}
	return v.resolution.ShortForms
}

// SelectedShortForm returns the highlighted short form, or "" if none.
func (v *View) SelectedShortForm() string {
	sfs := v.ShortForms()
	if v.selected < len(sfs) {
		return sfs[v.selected]
	}
	return ""
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visible := v.visibleRowCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleRowCount() int {
	// title, status, help and the votes panel
	const reserved = 12
	return max(1, v.height-reserved)
}

// View renders the resolution view.
func (v *View) View() string {
	var b strings.Builder

	title := "Acronyms"
	if v.document != nil {
		name := v.document.Title
		if name == "" {
			name = v.document.ID
		}
		title = "Acronyms - " + name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Resolving..."))
	case v.err != nil:
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.resolution == nil:
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("No document selected."))
	default:
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s, engine v%g, %d resolved, %d unresolved",
			v.resolution.State, v.resolution.Version,
			len(v.resolution.Acronyms), len(v.resolution.Unresolved()))))
		b.WriteString("\n\n")
		b.WriteString(v.renderRows())
		if v.votes != nil {
			b.WriteString("\n\n")
			b.WriteString(v.renderVotes())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.ResolutionHelp())))
	return b.String()
}

// renderRows renders the visible short forms and their long forms.
func (v *View) renderRows() string {
	sfs := v.ShortForms()
	if len(sfs) == 0 {
		return v.styles.Muted.Render("No acronyms found in this document.")
	}

	width := 0
	for _, sf := range sfs {
		width = max(width, len(sf))
	}

	var lines []string
	end := min(v.scrollOffset+v.visibleRowCount(), len(sfs))
	for i := v.scrollOffset; i < end; i++ {
		sf := sfs[i]
		long, ok := v.resolution.Acronyms[sf]
		if i == v.selected {
			if !ok {
				long = "(unresolved)"
			}
			lines = append(lines, v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", width, sf, long)))
			continue
		}
		row := "  " + v.styles.ShortForm.Render(fmt.Sprintf("%-*s", width, sf)) + "  "
		if ok {
			row += v.styles.Normal.Render(long)
		} else {
			row += v.styles.Unresolved.Render("(unresolved)")
		}
		lines = append(lines, row)
	}
	if len(sfs) > end-v.scrollOffset {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(sfs))))
	}
	return strings.Join(lines, "\n")
}

// renderVotes renders the vote tally panel for the selected short form.
func (v *View) renderVotes() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Votes for " + v.votes.ShortForm))
	b.WriteString("\n")

	switch {
	case errors.Is(v.votes.Err, domain.ErrNotFound) || (v.votes.Err == nil && v.votes.Entry == nil):
		b.WriteString(v.styles.Muted.Render("No votes recorded."))
	case v.votes.Err != nil:
		b.WriteString(v.styles.Error.Render(v.votes.Err.Error()))
	default:
		entry := v.votes.Entry
		if entry.Verified != "" {
			b.WriteString(v.styles.Success.Render("Verified: " + entry.Verified))
			b.WriteString("\n")
		}
		if majority, ok := entry.Majority(); ok {
			b.WriteString("Majority: " + majority + "\n")
		}
		longs := make([]string, 0, len(entry.LongFormCounts))
		for long, n := range entry.LongFormCounts {
			if n > 0 {
				longs = append(longs, long)
			}
		}
		sort.Slice(longs, func(i, j int) bool {
			ci, cj := entry.LongFormCounts[longs[i]], entry.LongFormCounts[longs[j]]
			if ci != cj {
				return ci > cj
			}
			return longs[i] < longs[j]
		})
		for _, long := range longs {
			b.WriteString(fmt.Sprintf("%4d  %s\n", entry.LongFormCounts[long], long))
		}
	}
	return v.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Resolution returns the loaded resolution, if any.
func (v *View) Resolution() *driving.Resolution {
	return v.resolution
}

// Votes returns the loaded vote tally, if any.
func (v *View) Votes() *messages.VotesLoaded {
	return v.votes
}

// Document returns the document being shown.
func (v *View) Document() *domain.Document {
	return v.document
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
