package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

var (
	resolveForce bool
	resolveJSON  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [doc-id...]",
	Short: "Resolve the acronyms of documents",
	Long: `Resolves the short forms of each document to their long forms.

Stored results are reused unless they were produced by an older engine
version or --force is given. Short forms the document never defines are
resolved from verified overrides or the majority across documents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveForce, "force", "f", false, "recompute even if the stored result is current")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if acronymService == nil {
		return errors.New("acronym service not configured")
	}

	for i, docID := range args {
		if i > 0 && !resolveJSON {
			cmd.Println()
		}
		if err := resolveAndPrint(cmd, docID, resolveForce); err != nil {
			return err
		}
	}
	return nil
}

// resolutionJSON is the machine-readable form of a resolution.
type resolutionJSON struct {
	DocumentID string            `json:"document_id"`
	State      string            `json:"state"`
	Version    float64           `json:"version"`
	Acronyms   map[string]string `json:"acronyms"`
	Unresolved []string          `json:"unresolved"`
}

func resolveAndPrint(cmd *cobra.Command, docID string, force bool) error {
	if acronymService == nil {
		return errors.New("acronym service not configured")
	}

	res, err := acronymService.Resolve(cmd.Context(), docID, force)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			return fmt.Errorf("no reader for document %s, check its URI and type with 'acronyms document get %s': %w",
				docID, docID, err)
		}
		if errors.Is(err, domain.ErrExtractionUnavailable) {
			return fmt.Errorf("could not read document %s: %w", docID, err)
		}
		return fmt.Errorf("failed to resolve %s: %w", docID, err)
	}

	if resolveJSON {
		data, err := json.MarshalIndent(resolutionJSON{
			DocumentID: res.DocumentID,
			State:      string(res.State),
			Version:    res.Version,
			Acronyms:   res.Acronyms,
			Unresolved: res.Unresolved(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	cmd.Printf("%s %s\n",
		render(out, headingStyle, "Document "+res.DocumentID),
		render(out, mutedStyle, fmt.Sprintf("(%s, engine v%g)", res.State, res.Version)))

	if len(res.ShortForms) == 0 {
		cmd.Println("  No acronyms found.")
		return nil
	}

	shorts := make([]string, 0, len(res.Acronyms))
	for sf := range res.Acronyms {
		shorts = append(shorts, sf)
	}
	sort.Strings(shorts)

	width := 0
	for _, sf := range res.ShortForms {
		width = max(width, len(sf))
	}
	for _, sf := range shorts {
		pad := fmt.Sprintf("%-*s", width, sf)
		cmd.Printf("  %s  %s\n", render(out, shortStyle, pad), res.Acronyms[sf])
	}
	if unresolved := res.Unresolved(); len(unresolved) > 0 {
		for _, sf := range unresolved {
			pad := fmt.Sprintf("%-*s", width, sf)
			cmd.Printf("  %s  %s\n", render(out, shortStyle, pad), render(out, warningStyle, "(unresolved)"))
		}
	}
	return nil
}
