package scoring

import (
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// Category identifies one scored hardware dimension.
type Category string

// Scored categories.
const (
	CategoryCPU  Category = "cpu"
	CategoryRAM  Category = "ram"
	CategoryGPU  Category = "gpu"
	CategoryDisk Category = "disk"
)

// CategoryScorer scores a single category of an inventory. Implementations
// must be pure and return 0 when their source data is absent.
type CategoryScorer interface {
	Category() Category
	Cap() int
	Score(inv types.HardwareInventory) int
}

// CPUScorer adds the core-count and clock-speed tiers.
type CPUScorer struct{}

// Category implements CategoryScorer.
func (CPUScorer) Category() Category { return CategoryCPU }

// Cap implements CategoryScorer.
func (CPUScorer) Cap() int { return types.MaxCPUScore }

// Score implements CategoryScorer.
func (CPUScorer) Score(inv types.HardwareInventory) int {
	if inv.CPU == nil {
		return 0
	}
	return CoreLadder.Score(float64(inv.CPU.Cores)) + ClockLadder.Score(inv.CPU.MaxClockGHz)
}

// RAMScorer scores total memory.
type RAMScorer struct{}

// Category implements CategoryScorer.
func (RAMScorer) Category() Category { return CategoryRAM }

// Cap implements CategoryScorer.
func (RAMScorer) Cap() int { return types.MaxRAMScore }

// Score implements CategoryScorer.
func (RAMScorer) Score(inv types.HardwareInventory) int {
	if inv.RAM == nil {
		return 0
	}
	return RAMLadder.Score(inv.RAM.TotalGB)
}

// DiskScorer scores free space on the primary volume.
type DiskScorer struct{}

// Category implements CategoryScorer.
func (DiskScorer) Category() Category { return CategoryDisk }

// Cap implements CategoryScorer.
func (DiskScorer) Cap() int { return types.MaxDiskScore }

// Score implements CategoryScorer.
func (DiskScorer) Score(inv types.HardwareInventory) int {
	if inv.Disk == nil {
		return 0
	}
	return DiskLadder.Score(inv.Disk.FreeGB)
}

// Engine reduces an ordered list of category scorers into a breakdown.
type Engine struct {
	scorers []CategoryScorer
}

// NewEngine creates an engine over the given scorers. With no arguments the
// four standard categories are used.
func NewEngine(scorers ...CategoryScorer) *Engine {
	if len(scorers) == 0 {
		scorers = DefaultScorers()
	}
	return &Engine{scorers: scorers}
}

// DefaultScorers returns the standard CPU, RAM, GPU and disk scorers.
func DefaultScorers() []CategoryScorer {
	return []CategoryScorer{CPUScorer{}, RAMScorer{}, GPUScorer{}, DiskScorer{}}
}

// Score computes the breakdown for inv. It never fails: every category
// independently scores 0 when its data is absent, and each result is
// clamped to its category cap.
func (e *Engine) Score(inv types.HardwareInventory) types.ScoreBreakdown {
	var b types.ScoreBreakdown
	for _, s := range e.scorers {
		points := clamp(s.Score(inv), 0, s.Cap())
		switch s.Category() {
		case CategoryCPU:
			b.CPU = points
		case CategoryRAM:
			b.RAM = points
		case CategoryGPU:
			b.GPU = points
		case CategoryDisk:
			b.Disk = points
		}
	}
	b.Total = b.CPU + b.RAM + b.GPU + b.Disk
	return b
}

var defaultEngine = NewEngine()

// Score computes the breakdown for inv using the default engine.
func Score(inv types.HardwareInventory) types.ScoreBreakdown {
	return defaultEngine.Score(inv)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
