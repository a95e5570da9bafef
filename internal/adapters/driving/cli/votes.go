package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [short-form] [long-form]",
	Short: "Set the verified long form of an acronym",
	Long: `Records an override that takes precedence over every document's own
definition and over the vote majority.`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

var votesCmd = &cobra.Command{
	Use:   "votes [short-form]",
	Short: "Show the long form votes of an acronym",
	Args:  cobra.ExactArgs(1),
	RunE:  runVotes,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(votesCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if acronymService == nil {
		return errors.New("acronym service not configured")
	}

	if err := acronymService.SetVerified(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to verify %s: %w", args[0], err)
	}

	cmd.Printf("%s now resolves to %q.\n", args[0], args[1])
	return nil
}

func runVotes(cmd *cobra.Command, args []string) error {
	if acronymService == nil {
		return errors.New("acronym service not configured")
	}

	entry, err := acronymService.Lookup(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No votes recorded for %s.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	cmd.Println(render(out, headingStyle, "Acronym "+entry.ShortForm))
	if entry.Verified != "" {
		cmd.Printf("  Verified: %s\n", render(out, successStyle, entry.Verified))
	}
	if majority, ok := entry.Majority(); ok {
		cmd.Printf("  Majority: %s\n", majority)
	}

	longs := make([]string, 0, len(entry.LongFormCounts))
	for long := range entry.LongFormCounts {
		longs = append(longs, long)
	}
	sort.Slice(longs, func(i, j int) bool {
		ci, cj := entry.LongFormCounts[longs[i]], entry.LongFormCounts[longs[j]]
		if ci != cj {
			return ci > cj
		}
		return longs[i] < longs[j]
	})

	if len(longs) == 0 {
		return nil
	}
	cmd.Println()
	cmd.Println("  Votes:")
	for _, long := range longs {
		cmd.Printf("    %4d  %s\n", entry.LongFormCounts[long], long)
	}
	return nil
}
