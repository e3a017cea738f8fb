package output

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// TemplateFormatter renders a report with a text/template. The template
// sees the Report, so fields such as .Result.Rating and
// .Inventory.GPUs are available alongside the helper functions.
type TemplateFormatter struct {
	mu   sync.Mutex
	text string
	tmpl *template.Template
}

// DefaultTemplate prints a one-line summary.
const DefaultTemplate = `{{.Result.Rating}} {{.Result.Breakdown.Total}}/100 ` +
	`cpu={{.Result.Breakdown.CPU}} ram={{.Result.Breakdown.RAM}} ` +
	`gpu={{.Result.Breakdown.GPU}} disk={{.Result.Breakdown.Disk}} ` +
	`tier={{.Result.Compatibility.Tier}}
`

// NewTemplateFormatter creates a formatter for text.
func NewTemplateFormatter(text string) *TemplateFormatter {
	return &TemplateFormatter{text: text}
}

// SetTemplate replaces the template text.
func (f *TemplateFormatter) SetTemplate(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.tmpl = nil
}

// TemplateFuncs returns the helpers available to templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// {{gb .Inventory.RAM.TotalGB}} -> "32 GiB"
		"gb": types.FormatGB,
		// {{date .Inventory.CollectedAt "2006-01-02"}}
		"date": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
		// {{ago .Inventory.CollectedAt}} -> "3 minutes ago"
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"join":  strings.Join,
		"upper": strings.ToUpper,
		"pct": func(score, maxScore int) string {
			if maxScore == 0 {
				return "0%"
			}
			return fmt.Sprintf("%d%%", score*100/maxScore)
		},
	}
}

// Format writes the report.
func (f *TemplateFormatter) Format(w *bytes.Buffer, r *Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tmpl == nil {
		tmpl, err := template.New("report").Funcs(TemplateFuncs()).Parse(f.text)
		if err != nil {
			return fmt.Errorf("parsing template: %w", err)
		}
		f.tmpl = tmpl
	}
	return f.tmpl.Execute(w, r)
}

func init() {
	Register("template", func() Formatter { return NewTemplateFormatter(DefaultTemplate) })
}

var _ Formatter = (*TemplateFormatter)(nil)
