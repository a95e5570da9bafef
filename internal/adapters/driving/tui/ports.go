// Package tui provides an interactive terminal user interface for browsing
// documents and their resolved acronyms.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Documents lists and removes registered documents.
	Documents driving.DocumentService

	// Acronyms resolves documents and looks up vote tallies.
	Acronyms driving.AcronymService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Acronyms == nil {
		return ErrMissingAcronymService
	}
	return nil
}
