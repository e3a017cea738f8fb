package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

const barWidth = 20

// PrettyFormatter renders a styled terminal report with lipgloss.
type PrettyFormatter struct{}

// Format writes the report.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.header(r))
	w.WriteString("\n")
	w.WriteString(f.hardware(r))
	w.WriteString(f.scores(r))
	w.WriteString(f.compatibility(r))
	if len(r.Inventory.Warnings) > 0 {
		w.WriteString(f.warnings(r.Inventory.Warnings))
	}
	w.WriteString(f.footer(r))
	w.WriteString("\n")
	return nil
}

func (f *PrettyFormatter) header(r *Report) string {
	res := r.Result
	lines := []string{
		TitleStyle.Render("AI Readiness") + "  " + RatingStyle(res.Rating).Render(res.Rating.String()) +
			"  " + ValueStyle.Render(fmt.Sprintf("%d/%d", res.Breakdown.Total, types.MaxTotalScore)),
		ValueStyle.Render(res.Recommendation),
	}

	var meta []string
	if r.Inventory.Hostname != "" {
		meta = append(meta, LabelStyle.Render("Host:")+" "+ValueStyle.Render(r.Inventory.Hostname))
	}
	if t := r.CollectedAt(); !t.IsZero() {
		meta = append(meta, LabelStyle.Render("Collected:")+" "+MutedStyle.Render(humanize.Time(t)))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  "))
	}
	return HeaderBox.Render(strings.Join(lines, "\n"))
}

func (f *PrettyFormatter) hardware(r *Report) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Hardware"))
	sb.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&sb, "  %s %s\n", LabelStyle.Render(padRight(label, 6)), value)
	}
	missing := MutedStyle.Render("not detected")

	inv := r.Inventory
	if inv.CPU != nil {
		row("CPU", ValueStyle.Render(describeCPU(inv.CPU)))
	} else {
		row("CPU", missing)
	}
	if inv.RAM != nil {
		row("RAM", ValueStyle.Render(types.FormatGB(inv.RAM.TotalGB)))
	} else {
		row("RAM", missing)
	}

	best, hasGPU := r.BestGPU()
	if !hasGPU {
		row("GPU", missing)
	}
	for _, gpu := range inv.GPUs {
		value := ValueStyle.Render(fmt.Sprintf("%s (%s)", gpu.Name, types.FormatGB(gpu.VRAMGB)))
		if hasGPU && gpu == best && len(inv.GPUs) > 1 {
			value += " " + MutedStyle.Render("scored")
		}
		row("GPU", value)
	}

	if inv.Disk != nil {
		row("Disk", ValueStyle.Render(describeDisk(inv.Disk)))
	} else {
		row("Disk", missing)
	}
	return sb.String()
}

func (f *PrettyFormatter) scores(r *Report) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Scores"))
	sb.WriteString("\n")
	for _, c := range r.Categories() {
		fmt.Fprintf(&sb, "  %s %s %s\n",
			LabelStyle.Render(padRight(c.Name, 6)),
			bar(c.Score, c.Max),
			ValueStyle.Render(fmt.Sprintf("%2d/%d", c.Score, c.Max)))
	}
	total := r.Result.Breakdown.Total
	fmt.Fprintf(&sb, "  %s %s %s\n",
		LabelStyle.Render(padRight("Total", 6)),
		bar(total, types.MaxTotalScore),
		ratedText(fmt.Sprintf("%d/%d", total, types.MaxTotalScore), r.Result.Rating))
	return sb.String()
}

func (f *PrettyFormatter) compatibility(r *Report) string {
	c := r.Result.Compatibility
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Model compatibility"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %s %s\n", LabelStyle.Render("Tier:"), ValueStyle.Render(c.Tier.Description()))
	if len(c.Capable) > 0 {
		fmt.Fprintf(&sb, "  %s %s\n", LabelStyle.Render("Runs well:"), ValueStyle.Render(strings.Join(c.Capable, ", ")))
	}
	if len(c.Struggling) > 0 {
		fmt.Fprintf(&sb, "  %s %s\n", LabelStyle.Render("Struggles:"), WarningStyle.Render(strings.Join(c.Struggling, ", ")))
	}
	return sb.String()
}

func (f *PrettyFormatter) warnings(warnings []string) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Foreground(ColorWarning).Render("Warnings"))
	sb.WriteString("\n")
	for _, w := range warnings {
		sb.WriteString(WarningStyle.Render("  " + w))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *PrettyFormatter) footer(r *Report) string {
	parts := []string{MutedStyle.Render("Use -o plain for unformatted output")}
	if r.RecordID != "" {
		parts = append([]string{LabelStyle.Render("Saved:") + " " + ValueStyle.Render(shortID(r.RecordID))}, parts...)
	}
	return FooterBox.Render(strings.Join(parts, "  "))
}

func ratedText(s string, rating types.Rating) string {
	return ValueStyle.Bold(true).Foreground(RatingColor(rating)).Render(s)
}

func bar(score, maxScore int) string {
	filled := 0
	if maxScore > 0 {
		filled = min(barWidth, max(0, score*barWidth/maxScore))
	}
	return BarStyle.Render(strings.Repeat("█", filled)) + BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func describeCPU(cpu *types.CPUInfo) string {
	var parts []string
	if cpu.Model != "" {
		parts = append(parts, cpu.Model)
	}
	cores := fmt.Sprintf("%d cores", cpu.Cores)
	if cpu.LogicalProcessors > 0 && cpu.LogicalProcessors != cpu.Cores {
		cores += fmt.Sprintf(" / %d threads", cpu.LogicalProcessors)
	}
	parts = append(parts, cores)
	if cpu.MaxClockGHz > 0 {
		parts = append(parts, fmt.Sprintf("%.2f GHz", cpu.MaxClockGHz))
	}
	return strings.Join(parts, ", ")
}

func describeDisk(d *types.DiskInfo) string {
	s := types.FormatGB(d.FreeGB) + " free"
	if d.TotalGB > 0 {
		s += fmt.Sprintf(" of %s (%.0f%%)", types.FormatGB(d.TotalGB), d.FreePercent())
	}
	if d.Path != "" {
		s += " on " + d.Path
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	Register("pretty", func() Formatter { return &PrettyFormatter{} })
}

var _ Formatter = (*PrettyFormatter)(nil)
