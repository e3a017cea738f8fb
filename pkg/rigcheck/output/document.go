package output

import (
	"time"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// document is the machine-readable shape shared by the json and yaml
// formatters.
type document struct {
	Hostname       string                    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	CollectedAt    *time.Time                `json:"collected_at,omitempty" yaml:"collected_at,omitempty"`
	RecordID       string                    `json:"record_id,omitempty" yaml:"record_id,omitempty"`
	Hardware       hardware                  `json:"hardware" yaml:"hardware"`
	Scores         types.ScoreBreakdown      `json:"scores" yaml:"scores"`
	Rating         types.Rating              `json:"rating" yaml:"rating"`
	Recommendation string                    `json:"recommendation" yaml:"recommendation"`
	Compatibility  types.CompatibilityReport `json:"compatibility" yaml:"compatibility"`
	Warnings       []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type hardware struct {
	CPU  *types.CPUInfo  `json:"cpu" yaml:"cpu"`
	RAM  *types.RAMInfo  `json:"ram" yaml:"ram"`
	GPUs []gpu           `json:"gpus" yaml:"gpus"`
	Disk *types.DiskInfo `json:"disk" yaml:"disk"`
}

type gpu struct {
	Name   string  `json:"name" yaml:"name"`
	VRAMGB float64 `json:"vram_gb" yaml:"vram_gb"`
	Scored bool    `json:"scored" yaml:"scored"`
}

func newDocument(r *Report) document {
	inv := r.Inventory
	doc := document{
		Hostname:       inv.Hostname,
		RecordID:       r.RecordID,
		Scores:         r.Result.Breakdown,
		Rating:         r.Result.Rating,
		Recommendation: r.Result.Recommendation,
		Compatibility:  r.Result.Compatibility,
		Warnings:       inv.Warnings,
		Hardware: hardware{
			CPU:  inv.CPU,
			RAM:  inv.RAM,
			GPUs: []gpu{},
			Disk: inv.Disk,
		},
	}
	if !inv.CollectedAt.IsZero() {
		t := inv.CollectedAt
		doc.CollectedAt = &t
	}

	best, ok := r.BestGPU()
	scored := false
	for _, g := range inv.GPUs {
		// Only one entry is flagged even when identical GPUs are present.
		isBest := ok && !scored && g == best
		scored = scored || isBest
		doc.Hardware.GPUs = append(doc.Hardware.GPUs, gpu{Name: g.Name, VRAMGB: g.VRAMGB, Scored: isBest})
	}
	return doc
}
