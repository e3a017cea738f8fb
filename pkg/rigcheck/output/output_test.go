package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/assess"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	inv := types.HardwareInventory{
		Hostname:    "workstation-01",
		CollectedAt: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		CPU:         &types.CPUInfo{Model: "AMD Ryzen 9 7950X", Cores: 16, LogicalProcessors: 32, MaxClockGHz: 5.7},
		RAM:         &types.RAMInfo{TotalGB: 64},
		GPUs: []types.GPUInfo{
			{Name: "AMD Raphael iGPU", VRAMGB: 0.5},
			{Name: "NVIDIA GeForce RTX 4090", VRAMGB: 24},
		},
		Disk:     &types.DiskInfo{Path: "/", FreeGB: 120, TotalGB: 480},
		Warnings: []string{"cpu clock read from /proc/cpuinfo"},
	}
	res, err := assess.Assess(inv)
	require.NoError(t, err)
	return &Report{Inventory: inv, Result: res, RecordID: "7f9c2ba4-e88f-4f1c-9b3c-2d1f7c6a0e11"}
}

func cpuOnlyReport(t *testing.T) *Report {
	t.Helper()
	inv := types.HardwareInventory{
		CPU:  &types.CPUInfo{Cores: 4, MaxClockGHz: 2.2},
		RAM:  &types.RAMInfo{TotalGB: 8},
		Disk: &types.DiskInfo{FreeGB: 15},
	}
	res, err := assess.Assess(inv)
	require.NoError(t, err)
	return &Report{Inventory: inv, Result: res}
}

func render(t *testing.T, f Formatter, r *Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, r))
	return buf.String()
}

func TestRegistry(t *testing.T) {
	assert.Equal(t,
		[]string{"csv", "json", "markdown", "plain", "pretty", "template", "yaml"},
		Available())

	for _, name := range Available() {
		f, err := Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := Get("xml")
	assert.ErrorIs(t, err, ErrUnknownFormatter)
}

func TestRegistry_Isolated(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.Available())

	reg.Register("csv", func() Formatter { return &CSVFormatter{NoHeader: true} })
	f, err := reg.Get("csv")
	require.NoError(t, err)
	assert.True(t, f.(*CSVFormatter).NoHeader)
}

func TestReport_Categories(t *testing.T) {
	r := sampleReport(t)
	cats := r.Categories()
	require.Len(t, cats, 4)

	sum := 0
	for _, c := range cats {
		assert.LessOrEqual(t, c.Score, c.Max)
		sum += c.Score
	}
	assert.Equal(t, r.Result.Breakdown.Total, sum)
}

func TestPrettyFormatter(t *testing.T) {
	out := render(t, &PrettyFormatter{}, sampleReport(t))

	for _, want := range []string{
		"EXCELLENT",
		"100/100",
		"workstation-01",
		"AMD Ryzen 9 7950X",
		"NVIDIA GeForce RTX 4090 (24 GiB)",
		"scored",
		"Llama 3 70B (4-bit)",
		"cpu clock read from /proc/cpuinfo",
		"7f9c2ba4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPrettyFormatter_MissingCategories(t *testing.T) {
	res, err := assess.Assess(types.HardwareInventory{})
	require.NoError(t, err)

	out := render(t, &PrettyFormatter{}, &Report{Result: res})
	assert.Contains(t, out, "not detected")
	assert.Contains(t, out, "POOR")
	assert.Contains(t, out, types.TierCPUOnly.Description())
}

func TestPlainFormatter(t *testing.T) {
	out := render(t, &PlainFormatter{}, cpuOnlyReport(t))

	assert.Contains(t, out, "RATING")
	assert.Contains(t, out, "POOR")
	assert.Contains(t, out, "TIER        cpu-only")
	assert.Contains(t, out, "SCORE GPU   0/40")
	assert.NotContains(t, out, "\x1b[")
}

func TestJSONFormatter(t *testing.T) {
	out := render(t, &JSONFormatter{}, sampleReport(t))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "EXCELLENT", doc["rating"])
	assert.Equal(t, "workstation-01", doc["hostname"])
	scores := doc["scores"].(map[string]any)
	assert.EqualValues(t, 100, scores["total"])

	gpus := doc["hardware"].(map[string]any)["gpus"].([]any)
	require.Len(t, gpus, 2)
	assert.Equal(t, false, gpus[0].(map[string]any)["scored"])
	assert.Equal(t, true, gpus[1].(map[string]any)["scored"])

	compat := doc["compatibility"].(map[string]any)
	assert.Equal(t, "all", compat["tier"])
	assert.EqualValues(t, 24, compat["best_gpu_vram_gb"])
}

func TestJSONFormatter_CPUOnly(t *testing.T) {
	out := render(t, &JSONFormatter{}, cpuOnlyReport(t))

	var doc struct {
		Compatibility types.CompatibilityReport `json:"compatibility"`
		Rating        types.Rating              `json:"rating"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.Compatibility.CPUOnly)
	assert.Nil(t, doc.Compatibility.BestGPUVRAMGB)
	assert.Empty(t, doc.Compatibility.Capable)
	assert.Equal(t, types.RatingPoor, doc.Rating)
	assert.NotContains(t, out, `"capable": null`)
}

func TestYAMLFormatter(t *testing.T) {
	out := render(t, &YAMLFormatter{}, sampleReport(t))

	var doc struct {
		Rating types.Rating         `yaml:"rating"`
		Scores types.ScoreBreakdown `yaml:"scores"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, types.RatingExcellent, doc.Rating)
	assert.Equal(t, 40, doc.Scores.GPU)
	assert.Contains(t, out, "rating: EXCELLENT")
}

func TestMarkdownFormatter(t *testing.T) {
	out := render(t, &MarkdownFormatter{}, sampleReport(t))

	assert.True(t, strings.HasPrefix(out, "# AI readiness: workstation-01\n"))
	assert.Contains(t, out, "| GPU | 40 | 40 |")
	assert.Contains(t, out, "| **Total** | **100** | 100 |")
	assert.Contains(t, out, "## Warnings")
}

func TestMdEscape(t *testing.T) {
	assert.Equal(t, `a\|b \*c\* d\_e`, mdEscape("a|b *c* d_e"))
}

func TestCSVFormatter(t *testing.T) {
	out := render(t, &CSVFormatter{}, sampleReport(t))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{
		"workstation-01", "2026-05-04T12:00:00Z", "25", "25", "40", "10", "100",
		"EXCELLENT", "all", "NVIDIA GeForce RTX 4090", "24.00",
	}, records[1])
}

func TestCSVFormatter_NoHeaderNoGPU(t *testing.T) {
	out := render(t, &CSVFormatter{NoHeader: true}, cpuOnlyReport(t))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cpu-only", records[0][8])
	assert.Equal(t, "", records[0][9])
}

func TestTemplateFormatter(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "default", tmpl: DefaultTemplate, want: "EXCELLENT 100/100 cpu=25 ram=25 gpu=40 disk=10 tier=all\n"},
		{name: "gb", tmpl: "{{gb .Inventory.RAM.TotalGB}}", want: "64 GiB"},
		{name: "date", tmpl: `{{date .Inventory.CollectedAt "2006-01-02"}}`, want: "2026-05-04"},
		{name: "join", tmpl: `{{join .Result.Compatibility.Capable "; "}}`, want: "Llama 3 70B (4-bit); Mixtral 8x7B; SDXL; Llama 3 8B; Mistral 7B"},
		{name: "pct", tmpl: "{{pct .Result.Breakdown.Disk 10}}", want: "100%"},
		{name: "upper", tmpl: "{{upper .Inventory.Hostname}}", want: "WORKSTATION-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, NewTemplateFormatter(tt.tmpl), sampleReport(t)))
		})
	}
}

func TestTemplateFormatter_Errors(t *testing.T) {
	f := NewTemplateFormatter("{{.Nope")
	var buf bytes.Buffer
	assert.Error(t, f.Format(&buf, sampleReport(t)))

	f.SetTemplate("{{.Result.Rating}}")
	buf.Reset()
	require.NoError(t, f.Format(&buf, sampleReport(t)))
	assert.Equal(t, "EXCELLENT", buf.String())
}

func TestBar(t *testing.T) {
	assert.Equal(t, barWidth, strings.Count(bar(40, 40), "█"))
	assert.Equal(t, 0, strings.Count(bar(0, 40), "█"))
	assert.Equal(t, barWidth/2, strings.Count(bar(5, 10), "█"))
}
