// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants resolve the acronyms of registered documents and
// curate the verified long forms.
package mcp

import "errors"

// ErrMissingAcronymService is returned when the acronym service is not provided.
var ErrMissingAcronymService = errors.New("mcp: acronym service is required")
