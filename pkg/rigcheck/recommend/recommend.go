// Package recommend maps a total score and the best GPU's VRAM to a rating
// band, an advisory string and a model-compatibility report.
package recommend

import (
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// Band is a rating band with its inclusive lower bound.
type Band struct {
	Min    int
	Rating types.Rating
	Advice string
}

// Bands is evaluated highest-first; totals below every band are POOR.
var Bands = []Band{
	{
		Min:    80,
		Rating: types.RatingExcellent,
		Advice: "Excellent for AI work: large models and training workloads are within reach.",
	},
	{
		Min:    60,
		Rating: types.RatingGood,
		Advice: "Good for AI work: medium models and fine-tuning of smaller models run well.",
	},
	{
		Min:    40,
		Rating: types.RatingFair,
		Advice: "Limited capability: use smaller or quantized models and low-VRAM modes.",
	},
}

// PoorAdvice accompanies totals below every band.
const PoorAdvice = "Not suitable for local AI work: consider a cloud GPU instance."

// RatingFor returns the band and advisory text for a total score.
func RatingFor(total int) (types.Rating, string) {
	for _, b := range Bands {
		if total >= b.Min {
			return b.Rating, b.Advice
		}
	}
	return types.RatingPoor, PoorAdvice
}

// TierThreshold assigns Tier to best-GPU VRAM at or above MinVRAMGB.
type TierThreshold struct {
	MinVRAMGB float64
	Tier      types.CompatibilityTier
}

// TierThresholds is evaluated highest-first. A GPU below every threshold is
// TierMinimal; no GPU at all is TierCPUOnly.
var TierThresholds = []TierThreshold{
	{MinVRAMGB: 24, Tier: types.TierAll},
	{MinVRAMGB: 12, Tier: types.TierMedium},
	{MinVRAMGB: 8, Tier: types.TierSmallMedium},
	{MinVRAMGB: 6, Tier: types.TierSmall},
}

// TierFor returns the compatibility tier for the best GPU's VRAM.
func TierFor(bestVRAMGB *float64) types.CompatibilityTier {
	if bestVRAMGB == nil {
		return types.TierCPUOnly
	}
	for _, th := range TierThresholds {
		if *bestVRAMGB >= th.MinVRAMGB {
			return th.Tier
		}
	}
	return types.TierMinimal
}

// Mapper classifies scores against a model catalog.
type Mapper struct {
	catalog Catalog
}

// NewMapper creates a mapper over catalog. A nil catalog selects
// DefaultCatalog.
func NewMapper(catalog Catalog) *Mapper {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Mapper{catalog: catalog.Clone()}
}

// Catalog returns a copy of the catalog in use.
func (m *Mapper) Catalog() Catalog {
	return m.catalog.Clone()
}

// Classify derives the rating band, advice and compatibility report. The
// rating depends only on total; the compatibility tier depends only on
// bestVRAMGB.
func (m *Mapper) Classify(total int, bestVRAMGB *float64) (types.Rating, string, types.CompatibilityReport) {
	rating, advice := RatingFor(total)
	return rating, advice, m.Compatibility(bestVRAMGB)
}

// Compatibility builds the report for the best GPU's VRAM.
func (m *Mapper) Compatibility(bestVRAMGB *float64) types.CompatibilityReport {
	tier := TierFor(bestVRAMGB)
	report := types.CompatibilityReport{Tier: tier}

	if tier == types.TierCPUOnly {
		report.CPUOnly = true
		report.Capable = []string{}
		report.Struggling = m.catalog.AllModels()
		return report
	}

	vram := *bestVRAMGB
	report.BestGPUVRAMGB = &vram

	// The top tier runs every class the catalog names, whichever tier lists it.
	if tier == types.TierAll {
		report.Capable = m.catalog.AllModels()
		report.Struggling = []string{}
		return report
	}

	models := m.catalog.Models(tier)
	report.Capable = models.Capable
	report.Struggling = models.Struggling
	return report
}

var defaultMapper = NewMapper(nil)

// Classify uses the default catalog.
func Classify(total int, bestVRAMGB *float64) (types.Rating, string, types.CompatibilityReport) {
	return defaultMapper.Classify(total, bestVRAMGB)
}
