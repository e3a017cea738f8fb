package assess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/assess"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/scoring"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

func workstation() types.HardwareInventory {
	return types.HardwareInventory{
		CPU:  &types.CPUInfo{Model: "AMD Ryzen 9 7950X", Cores: 16, LogicalProcessors: 32, MaxClockGHz: 4.2},
		RAM:  &types.RAMInfo{TotalGB: 64},
		GPUs: []types.GPUInfo{{Name: "NVIDIA RTX 4090", VRAMGB: 24}},
		Disk: &types.DiskInfo{Path: "/", FreeGB: 120, TotalGB: 500},
	}
}

func TestAssess_Workstation(t *testing.T) {
	result, err := assess.Assess(workstation())
	require.NoError(t, err)

	assert.Equal(t, types.ScoreBreakdown{CPU: 25, RAM: 25, GPU: 40, Disk: 10, Total: 100}, result.Breakdown)
	assert.Equal(t, types.RatingExcellent, result.Rating)
	assert.NotEmpty(t, result.Recommendation)
	assert.Equal(t, types.TierAll, result.Compatibility.Tier)
	require.NotNil(t, result.Compatibility.BestGPUVRAMGB)
	assert.Equal(t, 24.0, *result.Compatibility.BestGPUVRAMGB)
}

func TestAssess_CPUOnlyLaptop(t *testing.T) {
	inv := types.HardwareInventory{
		CPU:  &types.CPUInfo{Cores: 4, MaxClockGHz: 2.2},
		RAM:  &types.RAMInfo{TotalGB: 8},
		Disk: &types.DiskInfo{FreeGB: 15},
	}

	result, err := assess.Assess(inv)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Breakdown.GPU)
	assert.Equal(t, types.RatingPoor, result.Rating)
	assert.True(t, result.Compatibility.CPUOnly)
	assert.Empty(t, result.Compatibility.Capable)
	assert.NotEmpty(t, result.Compatibility.Struggling)
}

func TestAssess_EmptyInventory(t *testing.T) {
	result, err := assess.Assess(types.HardwareInventory{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Breakdown.Total)
	assert.Equal(t, types.RatingPoor, result.Rating)
	assert.Equal(t, types.TierCPUOnly, result.Compatibility.Tier)
}

func TestAssess_InvalidInventory(t *testing.T) {
	inv := workstation()
	inv.GPUs[0].VRAMGB = -1

	_, err := assess.Assess(inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInventory)
}

func TestAssess_Deterministic(t *testing.T) {
	inv := workstation()
	inv.GPUs = append(inv.GPUs, types.GPUInfo{Name: "Intel UHD Graphics 770", VRAMGB: 0.5})

	first, err := assess.Assess(inv)
	require.NoError(t, err)
	second, err := assess.Assess(inv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssess_WithCatalog(t *testing.T) {
	catalog := recommend.Catalog{
		types.TierAll: {Capable: []string{"Custom 405B"}, Struggling: []string{}},
	}

	result, err := assess.Assess(workstation(), assess.WithCatalog(catalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom 405B"}, result.Compatibility.Capable)
}

func TestAssess_WithEngine(t *testing.T) {
	engine := scoring.NewEngine(scoring.GPUScorer{})

	result, err := assess.Assess(workstation(), assess.WithEngine(engine))
	require.NoError(t, err)
	assert.Equal(t, types.ScoreBreakdown{GPU: 40, Total: 40}, result.Breakdown)
	assert.Equal(t, types.RatingFair, result.Rating)
}
