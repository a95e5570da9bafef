package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/connectors/filesystem"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// directoryWatcher reports document file changes under a directory.
type directoryWatcher interface {
	Watch(ctx context.Context) (<-chan filesystem.Event, error)
	Close() error
}

var newWatcher = func(root string) directoryWatcher {
	return filesystem.NewWatcher(root)
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Register and resolve documents as they appear in a directory",
	Long: `Watches a directory tree for PDF, text, Markdown, HTML and Word files.

New files are registered and resolved, modified files are re-resolved,
and deleted files are removed along with their votes.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil || acronymService == nil {
		return errors.New("services not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	known, err := knownDocuments(ctx)
	if err != nil {
		return err
	}

	w := newWatcher(args[0])
	defer w.Close()

	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)...\n", args[0])
	for ev := range events {
		handleWatchEvent(ctx, cmd, known, ev)
	}
	return nil
}

// knownDocuments maps registered URIs to document IDs.
func knownDocuments(ctx context.Context) (map[string]string, error) {
	docs, err := documentService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	known := make(map[string]string, len(docs))
	for i := range docs {
		if !filesystem.IsLocal(docs[i].URI) {
			continue
		}
		path := filesystem.ResolvePath(docs[i].URI)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		known[path] = docs[i].ID
	}
	return known, nil
}

func handleWatchEvent(ctx context.Context, cmd *cobra.Command, known map[string]string, ev filesystem.Event) {
	out := cmd.OutOrStdout()
	docID, registered := known[ev.Path]

	switch ev.Type {
	case filesystem.EventDeleted:
		if !registered {
			return
		}
		if err := documentService.Remove(ctx, docID); err != nil {
			logger.Warn("failed to remove %s: %v", ev.Path, err)
			return
		}
		delete(known, ev.Path)
		cmd.Printf("%s %s\n", render(out, mutedStyle, "removed"), ev.Path)
		return

	case filesystem.EventCreated, filesystem.EventUpdated:
		force := registered
		if !registered {
			doc, err := documentService.Add(ctx, "", ev.Path, ev.MIMEType)
			if err != nil {
				logger.Warn("failed to register %s: %v", ev.Path, err)
				return
			}
			docID = doc.ID
			known[ev.Path] = docID
		}

		res, err := acronymService.Resolve(ctx, docID, force)
		if err != nil {
			logger.Warn("failed to resolve %s: %v", ev.Path, err)
			return
		}
		cmd.Printf("%s %s: %d acronyms (%d unresolved)\n",
			render(out, successStyle, string(res.State)), ev.Path, len(res.Acronyms), len(res.Unresolved()))
	}
}
