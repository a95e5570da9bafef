// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments lists the registered documents.
	ViewDocuments ViewType = iota
	// ViewResolution shows the resolved acronyms of one document.
	ViewResolution
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewResolution:
		return "resolution"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the list of registered documents.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was chosen for resolution.
type DocumentSelected struct {
	Document domain.Document

	// Force recomputes the result even when the stored one is current.
	Force bool
}

// DocumentRemoved signals a document was unregistered.
type DocumentRemoved struct {
	DocumentID string
	Err        error
}

// ResolutionLoaded carries the resolved acronyms of a document.
type ResolutionLoaded struct {
	DocumentID string
	Resolution *driving.Resolution
	Err        error
}

// VotesLoaded carries the aggregate entry of one short form.
type VotesLoaded struct {
	ShortForm string
	Entry     *domain.AggregateEntry
	Err       error
}
