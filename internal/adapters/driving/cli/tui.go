package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/adapters/driving/tui"
)

// runApp starts the interactive program. Tests replace it.
var runApp = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse documents and their acronyms interactively",
	Long: `Launch the interactive terminal interface.

The TUI lists registered documents and shows the resolved acronyms of the
selected one, together with the cross-document votes for each short form.
When refresh.interval_minutes is set, stale results are refreshed in the
background while the TUI is open.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / show votes
  f        - Recompute the current document
  d        - Remove the highlighted document
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ports := &tui.Ports{Documents: documentService, Acronyms: acronymService}
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	if stop := startBackgroundRefresh(ctx); stop != nil {
		defer stop()
	}

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// startBackgroundRefresh runs the scheduler while the TUI is open and
// returns a function that stops it, or nil when no interval is configured.
func startBackgroundRefresh(ctx context.Context) func() {
	if newScheduler == nil || settingsService == nil {
		return nil
	}
	settings, err := settingsService.Get()
	if err != nil || settings.RefreshInterval <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	scheduler := newScheduler(settings.RefreshInterval)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
		}
	}()

	return func() {
		if err := scheduler.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "scheduler stop error: %v\n", err)
		}
		cancel()
		<-done
	}
}
