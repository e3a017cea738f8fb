package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/assess"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/history"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/output"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/probe"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// ErrBelowThreshold is returned when the rating is below --min-rating.
var ErrBelowThreshold = errors.New("rating below threshold")

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess this machine (default command)",
	Long: `Probe the hardware, score it and print the report.

With --inventory the probe is skipped and the given YAML or JSON inventory
file is assessed instead, which is useful for comparing machines or
checking a planned build.`,
	Args: cobra.NoArgs,
	RunE: runAssess,
}

var (
	inventoryFile string
	noHistory     bool
)

func init() {
	addAssessFlags(assessCmd)
	rootCmd.AddCommand(assessCmd)
}

// addAssessFlags registers the assessment flags on cmd. Both the root
// command and assess accept them.
func addAssessFlags(cmd *cobra.Command) {
	cmd.Flags().String("disk-path", "", "path whose volume is measured for free space")
	cmd.Flags().String("min-rating", "", "exit non-zero below this rating (POOR, FAIR, GOOD, EXCELLENT)")
	cmd.Flags().StringVar(&inventoryFile, "inventory", "", "assess a YAML or JSON inventory file instead of probing")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this assessment")
}

// bindAssessFlags binds the flags of the command actually running, so the
// root command and assess do not shadow each other.
func bindAssessFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("disk_path", cmd.Flags().Lookup("disk-path"))
	_ = viper.BindPFlag("min_rating", cmd.Flags().Lookup("min-rating"))
}

func runAssess(cmd *cobra.Command, args []string) error {
	bindAssessFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.Get(logging.ComponentAssess)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	inv, err := obtainInventory(ctx, cfg, inventoryFile)
	if err != nil {
		return err
	}

	catalog, err := cfg.ModelCatalog()
	if err != nil {
		return err
	}
	result, err := assess.Assess(inv, assess.WithCatalog(catalog))
	if err != nil {
		return fmt.Errorf("failed to assess hardware: %w", err)
	}
	log.Info("assessment complete",
		"total", result.Breakdown.Total,
		"rating", result.Rating.String(),
		"tier", string(result.Compatibility.Tier))

	report := &output.Report{Inventory: inv, Result: result}
	if cfg.History.Enabled && !noHistory && inventoryFile == "" {
		report.RecordID = recordAssessment(cfg, inv, result)
	}

	if err := writeReport(cmd.OutOrStdout(), cfg, report); err != nil {
		return err
	}

	return checkThreshold(cfg, result.Rating)
}

// obtainInventory probes the machine, or reads path when it is set.
func obtainInventory(ctx context.Context, cfg *config.Config, path string) (types.HardwareInventory, error) {
	if path != "" {
		printVerbose("Reading inventory from %s", path)
		return readInventory(path)
	}

	p := probe.New(probe.Options{
		DiskPath:         cfg.DiskPath,
		NvidiaSMI:        cfg.Probe.NvidiaSMI,
		DisableNvidiaSMI: cfg.Probe.DisableNvidiaSMI,
		Timeout:          cfg.Probe.Timeout,
	})
	inv, err := p.Collect(ctx)
	if err != nil {
		// Partial inventories still score; the warnings are in the report.
		printVerbose("Probe incomplete: %v", err)
	}
	return inv, nil
}

// readInventory decodes a YAML or JSON inventory file.
func readInventory(path string) (types.HardwareInventory, error) {
	var inv types.HardwareInventory

	data, err := os.ReadFile(path)
	if err != nil {
		return inv, fmt.Errorf("failed to read inventory: %w", err)
	}
	// JSON is valid YAML, so one decoder serves both.
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return inv, fmt.Errorf("failed to parse inventory %s: %w", path, err)
	}
	return inv, nil
}

// recordAssessment stores the assessment and prunes expired records.
// Failures are logged; history never fails an assessment.
func recordAssessment(cfg *config.Config, inv types.HardwareInventory, result types.AssessmentResult) string {
	log := logging.Get(logging.ComponentHistory)

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history unavailable", "path", cfg.History.Path, "error", err)
		printVerbose("History unavailable: %v", err)
		return ""
	}
	defer store.Close()

	rec, err := store.Add(inv, result)
	if err != nil {
		log.Warn("failed to record assessment", "error", err)
		return ""
	}
	log.Debug("assessment recorded", "id", rec.ID)

	if removed, err := store.Cleanup(cfg.History.RetentionDays); err != nil {
		log.Warn("history cleanup failed", "error", err)
	} else if removed > 0 {
		log.Info("expired history removed", "count", removed)
	}
	return rec.ID
}

// writeReport renders report in the configured format.
func writeReport(w io.Writer, cfg *config.Config, report *output.Report) error {
	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// newFormatter returns the formatter named by cfg.Output. A template
// implies -o template.
func newFormatter(cfg *config.Config) (output.Formatter, error) {
	name := cfg.Output
	if cfg.Template != "" && (name == "" || name == config.DefaultOutput) {
		name = "template"
	}
	if name == "" {
		name = config.DefaultOutput
	}

	formatter, err := output.Get(name)
	if err != nil {
		return nil, err
	}
	if tf, ok := formatter.(*output.TemplateFormatter); ok && cfg.Template != "" {
		tf.SetTemplate(cfg.Template)
	}
	return formatter, nil
}

// checkThreshold returns ErrBelowThreshold when a minimum rating is
// configured and rating is below it.
func checkThreshold(cfg *config.Config, rating types.Rating) error {
	minimum, ok, err := cfg.Threshold()
	if err != nil || !ok {
		return err
	}
	if rating.AtLeast(minimum) {
		return nil
	}
	return fmt.Errorf("%w: %s is below %s", ErrBelowThreshold, rating, minimum)
}
