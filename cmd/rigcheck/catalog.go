package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the model compatibility catalog",
	Long: `Show the VRAM tiers and the model classes listed for each, including any
overrides from the config file's catalog section.

Supports -o json and -o yaml; any other format prints a table.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogEntry is one tier as shown by the catalog command.
type catalogEntry struct {
	Tier        types.CompatibilityTier `json:"tier" yaml:"tier"`
	MinVRAMGB   *float64                `json:"min_vram_gb,omitempty" yaml:"min_vram_gb,omitempty"`
	Description string                  `json:"description" yaml:"description"`
	Capable     []string                `json:"capable" yaml:"capable"`
	Struggling  []string                `json:"struggling" yaml:"struggling"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := cfg.ModelCatalog()
	if err != nil {
		return err
	}
	return writeCatalog(cmd.OutOrStdout(), cfg.Output, catalogEntries(catalog))
}

// catalogEntries lists every tier in ladder order with the models a
// machine in that tier would be told about.
func catalogEntries(c recommend.Catalog) []catalogEntry {
	mapper := recommend.NewMapper(c)
	minimums := make(map[types.CompatibilityTier]float64, len(recommend.TierThresholds))
	for _, t := range recommend.TierThresholds {
		minimums[t.Tier] = t.MinVRAMGB
	}

	entries := make([]catalogEntry, 0, len(types.AllTiers))
	for _, tier := range types.AllTiers {
		entry := catalogEntry{Tier: tier, Description: tier.Description()}
		var report types.CompatibilityReport
		switch minVRAM, ok := minimums[tier]; {
		case ok:
			entry.MinVRAMGB = &minVRAM
			report = mapper.Compatibility(&minVRAM)
		case tier == types.TierCPUOnly:
			report = mapper.Compatibility(nil)
		default:
			var none float64
			report = mapper.Compatibility(&none)
		}
		entry.Capable, entry.Struggling = report.Capable, report.Struggling
		entries = append(entries, entry)
	}
	return entries
}

func writeCatalog(w io.Writer, format string, entries []catalogEntry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tVRAM\tCAPABLE\tSTRUGGLING")
	for _, e := range entries {
		vram := "none"
		switch {
		case e.MinVRAMGB != nil:
			vram = fmt.Sprintf(">= %g GB", *e.MinVRAMGB)
		case e.Tier == types.TierMinimal:
			vram = "any"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Tier, vram,
			orDash(strings.Join(e.Capable, ", ")),
			orDash(strings.Join(e.Struggling, ", ")))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
