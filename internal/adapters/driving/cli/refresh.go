package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

var (
	refreshInterval time.Duration
	historyLimit    int
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute results produced by an older engine",
	Long: `Recomputes every stored result whose engine version is older than the
current one and moves its votes accordingly.

With --interval the refresh repeats until interrupted. When the flag is not
given, refresh.interval_minutes from the settings is used; zero runs once.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

var refreshHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent refresh runs",
	Args:  cobra.NoArgs,
	RunE:  runRefreshHistory,
}

func init() {
	refreshCmd.Flags().DurationVarP(&refreshInterval, "interval", "i", 0, "repeat every interval (e.g. 30m)")
	refreshHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	refreshCmd.AddCommand(refreshHistoryCmd)
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if newScheduler == nil {
		return errors.New("refresh not configured")
	}

	interval := refreshInterval
	if !cmd.Flags().Changed("interval") && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			interval = settings.RefreshInterval
		}
	}
	if interval < 0 {
		return fmt.Errorf("%w: interval must not be negative", domain.ErrInvalidInput)
	}

	scheduler := newScheduler(interval)

	if interval == 0 {
		report, err := scheduler.RunOnce(cmd.Context())
		if report != nil {
			printReport(cmd, *report)
		}
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Refreshing stale results every %s (Ctrl+C to stop)...\n", interval)
	err := scheduler.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runRefreshHistory(cmd *cobra.Command, _ []string) error {
	if refreshHistory == nil {
		return errors.New("refresh history not configured")
	}

	runs, err := refreshHistory.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load refresh history: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No refresh runs recorded.")
		return nil
	}

	for i := range runs {
		printReport(cmd, runs[i])
	}
	return nil
}

func printReport(cmd *cobra.Command, report domain.RefreshReport) {
	out := cmd.OutOrStdout()
	status := render(out, successStyle, "ok")
	if !report.Success() {
		status = render(out, warningStyle, fmt.Sprintf("%d failed", len(report.Failed)))
	}

	cmd.Printf("%s  refreshed %d  %s  %s\n",
		report.StartedAt.Local().Format("2006-01-02 15:04:05"),
		report.Refreshed,
		status,
		render(out, mutedStyle, report.Duration().Round(time.Millisecond).String()))

	ids := make([]string, 0, len(report.Failed))
	for id := range report.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cmd.Printf("    %s: %s\n", id, report.Failed[id])
	}
}
