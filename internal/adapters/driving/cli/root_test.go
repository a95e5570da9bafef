package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/logger"
)

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		logger.SetVerbose(false)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "acronyms", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"document", "resolve", "verify", "votes", "refresh", "watch", "mcp", "settings", "tui", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	_, err := execute(t, "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestConfigure(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	oldVersion := version
	defer func() { version = oldVersion }()

	docs := &mockDocumentService{}
	acr := &mockAcronymService{}
	Configure(Config{Documents: docs, Acronyms: acr, Version: "1.2.3"})

	assert.Same(t, docs, documentService.(*mockDocumentService))
	assert.Same(t, acr, acronymService.(*mockAcronymService))
	assert.Nil(t, settingsService)
	assert.Nil(t, newScheduler)
	assert.Equal(t, "1.2.3", version)
}

func TestConfigure_KeepsVersionWhenEmpty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	oldVersion := version
	defer func() { version = oldVersion }()

	version = "dev"
	Configure(Config{})
	assert.Equal(t, "dev", version)
}

func TestRender_NotTerminal(t *testing.T) {
	buf := new(bytes.Buffer)
	assert.False(t, isTerminal(buf))
	assert.Equal(t, "plain", render(buf, headingStyle, "plain"))
}
