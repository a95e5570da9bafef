// Package cli provides the command-line interface.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	documentService driving.DocumentService
	acronymService  driving.AcronymService
	settingsService driving.SettingsService
	refreshHistory  driving.RefreshHistory
	newScheduler    func(interval time.Duration) driving.Scheduler

	// supportedMIMETypes lists the types a registered converter reads.
	// Empty skips the --mime check on document add.
	supportedMIMETypes []string
)

var rootCmd = &cobra.Command{
	Use:   "acronyms",
	Short: "Resolve the acronyms used in documents",
	Long: `acronyms finds the short forms a document defines, such as
"Support Vector Machine (SVM)", and resolves them to their long forms.

Results are cached per document and versioned by the extraction engine.
Long forms seen across documents are tallied so that an acronym a document
uses but never defines can still be resolved.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Config holds the services the commands operate on.
type Config struct {
	Documents driving.DocumentService
	Acronyms  driving.AcronymService
	Settings  driving.SettingsService
	History   driving.RefreshHistory

	// NewScheduler builds a background refresher for the given interval.
	NewScheduler func(interval time.Duration) driving.Scheduler

	// MIMETypes are the document types text can be extracted from.
	MIMETypes []string

	Version string
}

// Configure installs the services used by the commands.
func Configure(cfg Config) {
	documentService = cfg.Documents
	acronymService = cfg.Acronyms
	settingsService = cfg.Settings
	refreshHistory = cfg.History
	newScheduler = cfg.NewScheduler
	setSupportedMIMETypes(cfg.MIMETypes)
	if cfg.Version != "" {
		version = cfg.Version
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
