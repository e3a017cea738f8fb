// Package types provides the core data types for the rigcheck hardware
// assessor: the hardware inventory produced by the probe, the per-category
// score breakdown, and the assessment result derived from it.
package types

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Category score caps. The caps add up to MaxTotalScore.
const (
	MaxCPUScore  = 25
	MaxRAMScore  = 25
	MaxGPUScore  = 40
	MaxDiskScore = 10

	MaxTotalScore = MaxCPUScore + MaxRAMScore + MaxGPUScore + MaxDiskScore
)

// ErrInvalidInventory indicates that an inventory violates its preconditions
// (negative counts or sizes, NaN values, more free disk than total disk).
var ErrInvalidInventory = errors.New("invalid inventory")

// CPUInfo describes the host processor.
type CPUInfo struct {
	// Model is the processor model string, for display only.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Cores is the number of physical cores.
	Cores int `json:"cores" yaml:"cores"`

	// LogicalProcessors is the number of hardware threads.
	LogicalProcessors int `json:"logical_processors" yaml:"logical_processors"`

	// MaxClockGHz is the maximum rated clock speed.
	MaxClockGHz float64 `json:"max_clock_ghz" yaml:"max_clock_ghz"`
}

// RAMInfo describes installed system memory.
type RAMInfo struct {
	TotalGB float64 `json:"total_gb" yaml:"total_gb"`
}

// GPUInfo describes one graphics adapter.
type GPUInfo struct {
	Name   string  `json:"name" yaml:"name"`
	VRAMGB float64 `json:"vram_gb" yaml:"vram_gb"`
}

// DiskInfo describes the primary volume.
type DiskInfo struct {
	// Path is the mount point or directory the figures were read from.
	Path    string  `json:"path,omitempty" yaml:"path,omitempty"`
	FreeGB  float64 `json:"free_gb" yaml:"free_gb"`
	TotalGB float64 `json:"total_gb" yaml:"total_gb"`
}

// FreePercent returns the share of the volume that is free, in percent.
// It is used for display and never affects scoring.
func (d DiskInfo) FreePercent() float64 {
	if d.TotalGB <= 0 {
		return 0
	}
	return d.FreeGB / d.TotalGB * 100
}

// HardwareInventory is an immutable snapshot of the host's hardware.
// Any category may be absent; absence scores zero for that category.
type HardwareInventory struct {
	CPU  *CPUInfo  `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	RAM  *RAMInfo  `json:"ram,omitempty" yaml:"ram,omitempty"`
	GPUs []GPUInfo `json:"gpus,omitempty" yaml:"gpus,omitempty"`
	Disk *DiskInfo `json:"disk,omitempty" yaml:"disk,omitempty"`

	// Hostname and CollectedAt are informational.
	Hostname    string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	CollectedAt time.Time `json:"collected_at,omitempty" yaml:"collected_at,omitempty"`

	// Warnings lists categories the probe could not read.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Validate checks the inventory's preconditions. It returns an error wrapping
// ErrInvalidInventory on the first violation found.
func (inv *HardwareInventory) Validate() error {
	if inv.CPU != nil {
		if inv.CPU.Cores < 0 {
			return fmt.Errorf("%w: negative core count %d", ErrInvalidInventory, inv.CPU.Cores)
		}
		if inv.CPU.LogicalProcessors < 0 {
			return fmt.Errorf("%w: negative logical processor count %d", ErrInvalidInventory, inv.CPU.LogicalProcessors)
		}
		if err := checkQuantity("cpu clock", inv.CPU.MaxClockGHz); err != nil {
			return err
		}
	}

	if inv.RAM != nil {
		if err := checkQuantity("ram", inv.RAM.TotalGB); err != nil {
			return err
		}
	}

	for i, gpu := range inv.GPUs {
		if err := checkQuantity(fmt.Sprintf("gpu %d vram", i), gpu.VRAMGB); err != nil {
			return err
		}
	}

	if inv.Disk != nil {
		if err := checkQuantity("disk free", inv.Disk.FreeGB); err != nil {
			return err
		}
		if err := checkQuantity("disk total", inv.Disk.TotalGB); err != nil {
			return err
		}
		// A zero total means the probe could not read it.
		if inv.Disk.TotalGB > 0 && inv.Disk.FreeGB > inv.Disk.TotalGB {
			return fmt.Errorf("%w: disk free %.1f GB exceeds total %.1f GB",
				ErrInvalidInventory, inv.Disk.FreeGB, inv.Disk.TotalGB)
		}
	}

	return nil
}

func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInventory, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: negative %s %.2f", ErrInvalidInventory, name, v)
	}
	return nil
}

// ScoreBreakdown holds the per-category scores and their sum.
type ScoreBreakdown struct {
	CPU   int `json:"cpu" yaml:"cpu"`
	RAM   int `json:"ram" yaml:"ram"`
	GPU   int `json:"gpu" yaml:"gpu"`
	Disk  int `json:"disk" yaml:"disk"`
	Total int `json:"total" yaml:"total"`
}

// AssessmentResult is the outcome of assessing one inventory.
type AssessmentResult struct {
	Breakdown      ScoreBreakdown      `json:"breakdown" yaml:"breakdown"`
	Rating         Rating              `json:"rating" yaml:"rating"`
	Recommendation string              `json:"recommendation" yaml:"recommendation"`
	Compatibility  CompatibilityReport `json:"compatibility" yaml:"compatibility"`
}

// CompatibilityReport classifies which model classes the best GPU can run.
type CompatibilityReport struct {
	// BestGPUVRAMGB is nil when no GPU was detected.
	BestGPUVRAMGB *float64          `json:"best_gpu_vram_gb,omitempty" yaml:"best_gpu_vram_gb,omitempty"`
	Tier          CompatibilityTier `json:"tier" yaml:"tier"`

	// CPUOnly is set when no dedicated GPU is available.
	CPUOnly    bool     `json:"cpu_only" yaml:"cpu_only"`
	Capable    []string `json:"capable" yaml:"capable"`
	Struggling []string `json:"struggling" yaml:"struggling"`
}
