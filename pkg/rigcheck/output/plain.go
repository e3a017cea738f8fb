package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// PlainFormatter writes aligned key/value lines with no styling.
type PlainFormatter struct{}

// Format writes the report.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(key, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", key, value)
	}

	inv := r.Inventory
	res := r.Result

	if inv.Hostname != "" {
		line("HOST", inv.Hostname)
	}
	if inv.CPU != nil {
		line("CPU", describeCPU(inv.CPU))
	}
	if inv.RAM != nil {
		line("RAM", types.FormatGB(inv.RAM.TotalGB))
	}
	for _, gpu := range inv.GPUs {
		line("GPU", fmt.Sprintf("%s (%s)", gpu.Name, types.FormatGB(gpu.VRAMGB)))
	}
	if inv.Disk != nil {
		line("DISK", describeDisk(inv.Disk))
	}
	for _, c := range r.Categories() {
		line("SCORE "+strings.ToUpper(c.Name), fmt.Sprintf("%d/%d", c.Score, c.Max))
	}
	line("TOTAL", fmt.Sprintf("%d/%d", res.Breakdown.Total, types.MaxTotalScore))
	line("RATING", res.Rating.String())
	line("ADVICE", res.Recommendation)
	line("TIER", string(res.Compatibility.Tier))
	line("CAPABLE", strings.Join(res.Compatibility.Capable, ", "))
	line("STRUGGLING", strings.Join(res.Compatibility.Struggling, ", "))
	for _, warning := range inv.Warnings {
		line("WARNING", warning)
	}
	if r.RecordID != "" {
		line("RECORD", r.RecordID)
	}
	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter { return &PlainFormatter{} })
}

var _ Formatter = (*PlainFormatter)(nil)
