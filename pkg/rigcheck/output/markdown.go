package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// MarkdownFormatter writes a GitHub-flavored Markdown report, suitable for
// pasting into issues or wikis.
type MarkdownFormatter struct{}

// Format writes the report.
func (f *MarkdownFormatter) Format(w *bytes.Buffer, r *Report) error {
	inv := r.Inventory
	res := r.Result

	title := "AI readiness"
	if inv.Hostname != "" {
		title += ": " + inv.Hostname
	}
	fmt.Fprintf(w, "# %s\n\n", mdEscape(title))
	fmt.Fprintf(w, "**%s** (%d/%d). %s\n\n", res.Rating, res.Breakdown.Total, types.MaxTotalScore, mdEscape(res.Recommendation))

	w.WriteString("## Hardware\n\n| Component | Detail |\n|---|---|\n")
	if inv.CPU != nil {
		fmt.Fprintf(w, "| CPU | %s |\n", mdEscape(describeCPU(inv.CPU)))
	}
	if inv.RAM != nil {
		fmt.Fprintf(w, "| RAM | %s |\n", types.FormatGB(inv.RAM.TotalGB))
	}
	for _, gpu := range inv.GPUs {
		fmt.Fprintf(w, "| GPU | %s (%s) |\n", mdEscape(gpu.Name), types.FormatGB(gpu.VRAMGB))
	}
	if inv.Disk != nil {
		fmt.Fprintf(w, "| Disk | %s |\n", mdEscape(describeDisk(inv.Disk)))
	}

	w.WriteString("\n## Scores\n\n| Category | Score | Max |\n|---|---:|---:|\n")
	for _, c := range r.Categories() {
		fmt.Fprintf(w, "| %s | %d | %d |\n", c.Name, c.Score, c.Max)
	}
	fmt.Fprintf(w, "| **Total** | **%d** | %d |\n", res.Breakdown.Total, types.MaxTotalScore)

	c := res.Compatibility
	fmt.Fprintf(w, "\n## Model compatibility\n\nTier: %s\n\n", mdEscape(c.Tier.Description()))
	writeList(w, "Runs well", c.Capable)
	writeList(w, "Struggles", c.Struggling)

	if len(inv.Warnings) > 0 {
		w.WriteString("## Warnings\n\n")
		for _, warning := range inv.Warnings {
			fmt.Fprintf(w, "- %s\n", mdEscape(warning))
		}
		w.WriteString("\n")
	}
	return nil
}

func writeList(w *bytes.Buffer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(w, "- %s\n", mdEscape(item))
	}
	w.WriteString("\n")
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}

func init() {
	Register("markdown", func() Formatter { return &MarkdownFormatter{} })
}

var _ Formatter = (*MarkdownFormatter)(nil)
