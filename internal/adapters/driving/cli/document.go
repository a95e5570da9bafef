package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

const documentAddLong = `Registers a document by path, file:// URI, or http(s) URL.

The MIME type is inferred from the URI when --mime is not given.`

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage registered documents",
	Long:  `Register, list, view, or remove the documents whose acronyms are resolved.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [uri]",
	Short: "Register a document",
	Long:  documentAddLong,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Unregister a document",
	Long:  `Removes a document, its stored result, and its votes from the aggregate.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

var (
	documentTitle   string
	documentMIME    string
	documentResolve bool
)

func init() {
	documentAddCmd.Flags().StringVarP(&documentTitle, "title", "t", "", "document title (default: file name)")
	documentAddCmd.Flags().StringVar(&documentMIME, "mime", "", "MIME type (default: inferred)")
	documentAddCmd.Flags().BoolVarP(&documentResolve, "resolve", "r", false, "resolve acronyms after registering")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if documentMIME != "" && len(supportedMIMETypes) > 0 && !slices.Contains(supportedMIMETypes, documentMIME) {
		return fmt.Errorf("%w: %q (supported: %s)",
			domain.ErrUnsupportedType, documentMIME, strings.Join(supportedMIMETypes, ", "))
	}

	doc, err := documentService.Add(cmd.Context(), documentTitle, args[0], documentMIME)
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}

	cmd.Printf("Registered document %s\n", doc.ID)
	cmd.Printf("  Title: %s\n", doc.Title)
	cmd.Printf("  Type:  %s\n", doc.MIMEType)

	if !documentResolve {
		return nil
	}
	cmd.Println()
	return resolveAndPrint(cmd, doc.ID, false)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents registered.")
		return nil
	}

	out := cmd.OutOrStdout()
	cmd.Println(render(out, headingStyle, "Documents:"))
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    URI:   %s\n", render(out, mutedStyle, docs[i].URI))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  URI:      %s\n", doc.URI)
	cmd.Printf("  Type:     %s\n", doc.MIMEType)
	if !doc.CreatedAt.IsZero() {
		cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	if err := documentService.Remove(cmd.Context(), docID); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", docID)
	return nil
}

// setSupportedMIMETypes records the readable types and lists them in the
// help of document add.
func setSupportedMIMETypes(types []string) {
	supportedMIMETypes = types
	documentAddCmd.Long = documentAddLong
	if len(types) > 0 {
		documentAddCmd.Long += "\n\nSupported types:\n  " + strings.Join(types, "\n  ")
	}
}
