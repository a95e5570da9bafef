package mcp

import (
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Acronyms resolves documents and manages the vote aggregate.
	Acronyms driving.AcronymService

	// Documents lists registered documents. Optional.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Acronyms == nil {
		return ErrMissingAcronymService
	}
	return nil
}
