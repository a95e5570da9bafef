package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage engine settings",
	Long: `View and configure the extraction engine.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Run 'acronyms settings show' for the keys.

Examples:
  acronyms settings set engine.window_size 12
  acronyms settings set extraction.pdftotext false
  acronyms settings set refresh.interval_minutes 30`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Step through every setting, keeping the current value when the input is empty.`,
	RunE:  runSettingsWizard,
}

// settingsInput is where the wizard reads answers from.
var settingsInput io.Reader = os.Stdin

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	out := cmd.OutOrStdout()
	section := ""
	for _, key := range settingsService.Keys() {
		if s, _, _ := strings.Cut(key, "."); s != section {
			if section != "" {
				cmd.Println()
			}
			section = s
			cmd.Println(render(out, headingStyle, "["+section+"]"))
		}
		cmd.Printf("  %-28s %s\n", key, values[key])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Acronyms Settings Wizard")
	cmd.Println("========================")
	if f, ok := settingsInput.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		cmd.Println("(reading answers from non-interactive input)")
	}
	cmd.Println()

	reader := bufio.NewReader(settingsInput)
	changed := 0
	for i, key := range settingsService.Keys() {
		current := values[key]
		if isBoolSetting(current) {
			cmd.Printf("%d. %s\n     1. true\n     2. false\n", i+1, key)
			def := 2
			if current == "true" {
				def = 1
			}
			cmd.Printf("   Enter choice [%d]: ", def)
			choice := parseChoice(readLine(reader), 2, def)
			answer := strconv.FormatBool(choice == 1)
			if answer == current {
				continue
			}
			if err := settingsService.Set(key, answer); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}
			changed++
			continue
		}

		cmd.Printf("%d. %s [%s]: ", i+1, key, current)
		answer := readLine(reader)
		if answer == "" || answer == current {
			continue
		}
		if err := settingsService.Set(key, answer); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Updated %d settings.\n", changed)
	return nil
}

// Helper functions.

func isBoolSetting(value string) bool {
	return value == "true" || value == "false"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
