package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// ResolveInput is the input schema for the resolve_acronyms tool.
type ResolveInput struct {
	DocumentID   string `json:"document_id" jsonschema:"the id of a registered document"`
	ForceRefresh bool   `json:"force_refresh,omitempty" jsonschema:"recompute even if the stored result is current"`
}

// ResolveOutput is the output schema for the resolve_acronyms tool.
type ResolveOutput struct {
	DocumentID string            `json:"document_id"`
	Acronyms   map[string]string `json:"acronyms"`
	Unresolved []string          `json:"unresolved,omitempty"`
	State      string            `json:"state"`
	Version    float64           `json:"version"`
}

// VerifyInput is the input schema for the set_verified_long_form tool.
type VerifyInput struct {
	ShortForm string `json:"short_form" jsonschema:"the acronym, e.g. SVM"`
	LongForm  string `json:"long_form" jsonschema:"the long form every document should resolve it to"`
}

// VerifyOutput is the output schema for the set_verified_long_form tool.
type VerifyOutput struct {
	ShortForm string `json:"short_form"`
	LongForm  string `json:"long_form"`
}

// LookupInput is the input schema for the lookup_acronym tool.
type LookupInput struct {
	ShortForm string `json:"short_form" jsonschema:"the acronym to look up"`
}

// LookupOutput is the output schema for the lookup_acronym tool.
type LookupOutput struct {
	ShortForm string       `json:"short_form"`
	Verified  string       `json:"verified,omitempty"`
	Majority  string       `json:"majority,omitempty"`
	Votes     []VoteOutput `json:"votes"`
}

// VoteOutput is one long form and its document count.
type VoteOutput struct {
	LongForm string `json:"long_form"`
	Count    int    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_acronyms",
		Description: "Resolve the acronyms used in a registered document to their long forms",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_verified_long_form",
		Description: "Set the verified long form of an acronym, overriding every document",
	}, s.handleSetVerified)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_acronym",
		Description: "Show the long forms documents use for an acronym and how often",
	}, s.handleLookup)
}

func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	res, err := s.ports.Acronyms.Resolve(ctx, strings.TrimSpace(input.DocumentID), input.ForceRefresh)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	acronyms := res.Acronyms
	if acronyms == nil {
		acronyms = map[string]string{}
	}
	return nil, ResolveOutput{
		DocumentID: res.DocumentID,
		Acronyms:   acronyms,
		Unresolved: res.Unresolved(),
		State:      string(res.State),
		Version:    res.Version,
	}, nil
}

func (s *Server) handleSetVerified(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	short := strings.TrimSpace(input.ShortForm)
	long := strings.TrimSpace(input.LongForm)
	if short == "" || long == "" {
		return nil, VerifyOutput{}, fmt.Errorf("%w: short_form and long_form are required", domain.ErrInvalidInput)
	}

	if err := s.ports.Acronyms.SetVerified(ctx, short, long); err != nil {
		return nil, VerifyOutput{}, err
	}
	return nil, VerifyOutput{ShortForm: short, LongForm: long}, nil
}

func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	entry, err := s.ports.Acronyms.Lookup(ctx, strings.TrimSpace(input.ShortForm))
	if err != nil {
		return nil, LookupOutput{}, err
	}

	output := LookupOutput{
		ShortForm: entry.ShortForm,
		Verified:  entry.Verified,
		Votes:     make([]VoteOutput, 0, len(entry.LongFormCounts)),
	}
	if majority, ok := entry.Majority(); ok {
		output.Majority = majority
	}
	for long, count := range entry.LongFormCounts {
		output.Votes = append(output.Votes, VoteOutput{LongForm: long, Count: count})
	}
	sort.Slice(output.Votes, func(i, j int) bool {
		if output.Votes[i].Count != output.Votes[j].Count {
			return output.Votes[i].Count > output.Votes[j].Count
		}
		return output.Votes[i].LongForm < output.Votes[j].LongForm
	})

	return nil, output, nil
}
