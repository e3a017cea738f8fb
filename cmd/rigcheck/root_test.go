package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/history"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// runCLI executes the root command with args in an isolated home.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		_ = logging.Close()
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into
// each other.
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

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("RIGCHECK_LOGGING_PATH", filepath.Join(home, "rigcheck.log"))
	t.Setenv("RIGCHECK_HISTORY_PATH", filepath.Join(home, "history"))
	return home
}

func TestInvalidValueDoesNotBlockOtherCommands(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("RIGCHECK_MIN_RATING", "bogus")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "config path", args: []string{"config", "path"}, want: filepath.Join(home, ".config", "rigcheck", "config.yaml")},
		{name: "config show", args: []string{"config", "show"}, want: "# Warning: invalid configuration"},
		{name: "version", args: []string{"version"}, want: "rigcheck "},
		{name: "catalog", args: []string{"catalog", "-o", "plain"}, want: "cpu-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestInvalidThresholdFailsAssessment(t *testing.T) {
	isolateHome(t)
	t.Setenv("RIGCHECK_MIN_RATING", "bogus")
	path := writeFile(t, "rig.json", laptopJSON)

	_, err := runCLI(t, "assess", "--inventory", path, "-o", "json")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInvalidLoggingLevelFallsBack(t *testing.T) {
	isolateHome(t)
	t.Setenv("RIGCHECK_LOGGING_LEVEL", "chatty")

	out, err := runCLI(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "config.yaml")
}

func TestAssessFromInventory(t *testing.T) {
	isolateHome(t)
	path := writeFile(t, "rig.yaml", workstationYAML)

	out, err := runCLI(t, "assess", "--inventory", path, "--template", "{{.Result.Rating}} {{.Result.Compatibility.Tier}}")
	require.NoError(t, err)
	assert.Equal(t, "EXCELLENT all", out)
}

func TestAssessBelowThreshold(t *testing.T) {
	isolateHome(t)
	path := writeFile(t, "rig.json", laptopJSON)

	out, err := runCLI(t, "assess", "--inventory", path, "--min-rating", "GOOD", "-o", "template")
	assert.ErrorIs(t, err, ErrBelowThreshold)
	// The report is still printed.
	assert.Contains(t, out, "POOR 21/100")
}

func TestLookupRecord(t *testing.T) {
	store, err := history.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, err = lookupRecord(store, latestID)
	assert.ErrorIs(t, err, history.ErrNotFound)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	older, err := store.Add(types.HardwareInventory{CollectedAt: base}, types.AssessmentResult{})
	require.NoError(t, err)
	newer, err := store.Add(types.HardwareInventory{CollectedAt: base.Add(time.Hour)}, types.AssessmentResult{})
	require.NoError(t, err)

	got, err := lookupRecord(store, latestID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	got, err = lookupRecord(store, older.ID[:12])
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
}
