package scoring

import (
	"strings"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// FamilyPattern maps a case-insensitive GPU name substring to a weight.
type FamilyPattern struct {
	Pattern string
	Weight  int
}

// DefaultFamilyWeight is awarded to GPU names that match no pattern.
const DefaultFamilyWeight = 3

// FamilyTable is evaluated in order; the first matching pattern wins.
// The order is a priority list, not a ranking by weight.
var FamilyTable = []FamilyPattern{
	{Pattern: "rtx 40", Weight: 15},
	{Pattern: "rtx 30", Weight: 12},
	{Pattern: "rtx 20", Weight: 10},
	{Pattern: "gtx 16", Weight: 8},
	{Pattern: "gtx 10", Weight: 6},
	{Pattern: "quadro", Weight: 10},
	{Pattern: "tesla", Weight: 15},
}

// FamilyWeight returns the family score for a GPU name.
func FamilyWeight(name string) int {
	lower := strings.ToLower(name)
	for _, fp := range FamilyTable {
		if strings.Contains(lower, fp.Pattern) {
			return fp.Weight
		}
	}
	return DefaultFamilyWeight
}

// BestGPU returns the GPU with the largest VRAM. Ties on VRAM go to the
// higher family weight, then to the lexically smaller name, so the choice
// does not depend on the order the GPUs were enumerated in.
func BestGPU(gpus []types.GPUInfo) (types.GPUInfo, bool) {
	if len(gpus) == 0 {
		return types.GPUInfo{}, false
	}

	best := gpus[0]
	for _, gpu := range gpus[1:] {
		if betterGPU(gpu, best) {
			best = gpu
		}
	}
	return best, true
}

func betterGPU(a, b types.GPUInfo) bool {
	if a.VRAMGB != b.VRAMGB {
		return a.VRAMGB > b.VRAMGB
	}
	wa, wb := FamilyWeight(a.Name), FamilyWeight(b.Name)
	if wa != wb {
		return wa > wb
	}
	return a.Name < b.Name
}

// BestGPUVRAM returns the best GPU's VRAM, or nil when there is no GPU.
func BestGPUVRAM(gpus []types.GPUInfo) *float64 {
	best, ok := BestGPU(gpus)
	if !ok {
		return nil
	}
	vram := best.VRAMGB
	return &vram
}

// GPUScorer scores only the best GPU: VRAM tier plus family tier.
type GPUScorer struct{}

// Category implements CategoryScorer.
func (GPUScorer) Category() Category { return CategoryGPU }

// Cap implements CategoryScorer.
func (GPUScorer) Cap() int { return types.MaxGPUScore }

// Score implements CategoryScorer.
func (GPUScorer) Score(inv types.HardwareInventory) int {
	best, ok := BestGPU(inv.GPUs)
	if !ok {
		return 0
	}
	return VRAMLadder.Score(best.VRAMGB) + FamilyWeight(best.Name)
}
