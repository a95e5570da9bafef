package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI and extraction engine versions",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("acronyms version %s\n", version)
		cmd.Printf("extraction engine v%g\n", domain.EngineVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
