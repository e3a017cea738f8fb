package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

// CSVHeader is the column order written by CSVFormatter.
var CSVHeader = []string{
	"hostname", "collected_at", "cpu", "ram", "gpu", "disk", "total",
	"rating", "tier", "best_gpu", "best_gpu_vram_gb",
}

// CSVFormatter writes a header and one row per report, so runs from
// several machines can be concatenated and compared.
type CSVFormatter struct {
	// NoHeader omits the header row.
	NoHeader bool
}

// Format writes the report.
func (f *CSVFormatter) Format(w *bytes.Buffer, r *Report) error {
	cw := csv.NewWriter(w)
	if !f.NoHeader {
		if err := cw.Write(CSVHeader); err != nil {
			return err
		}
	}
	if err := cw.Write(csvRow(r)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r *Report) []string {
	b := r.Result.Breakdown
	collected := ""
	if t := r.CollectedAt(); !t.IsZero() {
		collected = t.UTC().Format(time.RFC3339)
	}
	bestName, bestVRAM := "", ""
	if best, ok := r.BestGPU(); ok {
		bestName = best.Name
		bestVRAM = strconv.FormatFloat(best.VRAMGB, 'f', 2, 64)
	}
	return []string{
		r.Inventory.Hostname,
		collected,
		strconv.Itoa(b.CPU),
		strconv.Itoa(b.RAM),
		strconv.Itoa(b.GPU),
		strconv.Itoa(b.Disk),
		strconv.Itoa(b.Total),
		r.Result.Rating.String(),
		string(r.Result.Compatibility.Tier),
		bestName,
		bestVRAM,
	}
}

func init() {
	Register("csv", func() Formatter { return &CSVFormatter{} })
}

var _ Formatter = (*CSVFormatter)(nil)
