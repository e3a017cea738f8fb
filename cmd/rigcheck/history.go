package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/history"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/output"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessments",
	Long: `List assessments recorded on this machine, newest first.

History is stored locally under $XDG_DATA_HOME/rigcheck/history and is
never sent anywhere.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id|latest>",
	Short: "Show a past assessment",
	Long: `Render a recorded assessment in any output format. A unique ID prefix is
enough; "latest" shows the most recent assessment.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a past assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove assessments older than the retention period",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show (0 for all)")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the configured history store.
func openHistory() (*config.Config, *history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(records) == 0 {
		printInfo("No assessments recorded yet.")
		printInfo("Run 'rigcheck' to assess this machine.")
		return nil
	}

	if err := writeHistory(cmd.OutOrStdout(), records); err != nil {
		return err
	}
	printInfo("\nUse 'rigcheck history show <id>' for the full report.")
	return nil
}

// writeHistory prints one row per record.
func writeHistory(w io.Writer, records []history.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tHOST\tSCORE\tRATING\tTIER\tBEST GPU")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			truncateString(rec.ID, 8),
			humanize.Time(rec.Timestamp),
			orDash(rec.Hostname),
			rec.Result.Breakdown.Total, types.MaxTotalScore,
			rec.Result.Rating,
			rec.Result.Compatibility.Tier,
			bestGPUName(rec),
		)
	}
	return tw.Flush()
}

func bestGPUName(rec history.Record) string {
	report := output.Report{Inventory: rec.Inventory}
	if gpu, ok := report.BestGPU(); ok {
		return gpu.Name
	}
	return "-"
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := lookupRecord(store, args[0])
	if err != nil {
		return err
	}

	report := &output.Report{Inventory: rec.Inventory, Result: rec.Result, RecordID: rec.ID}
	return writeReport(cmd.OutOrStdout(), cfg, report)
}

// latestID selects the most recent record in history show.
const latestID = "latest"

// lookupRecord resolves an ID, ID prefix or "latest".
func lookupRecord(store *history.Store, id string) (*history.Record, error) {
	if id == latestID {
		return store.Latest()
	}
	return store.Get(id)
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	_, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	printInfo("Removed %s", args[0])
	return nil
}

func runHistoryClean(cmd *cobra.Command, args []string) error {
	cfg, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	retentionDays := cfg.History.RetentionDays
	if retentionDays <= 0 {
		retentionDays = config.DefaultRetentionDays
	}

	printInfo("Removing assessments older than %d days...", retentionDays)
	removed, err := store.Cleanup(retentionDays)
	if err != nil {
		return fmt.Errorf("failed to clean history: %w", err)
	}
	printInfo("Removed %d %s.", removed, plural(removed, "assessment", "assessments"))
	return nil
}

// truncateString truncates s to maxLen bytes.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
