package recommend

import (
	"slices"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// TierModels is the two-set model list for one compatibility tier.
type TierModels struct {
	Capable    []string `json:"capable" yaml:"capable" mapstructure:"capable"`
	Struggling []string `json:"struggling" yaml:"struggling" mapstructure:"struggling"`
}

// Catalog maps compatibility tiers to illustrative model classes. The model
// names are data; tier boundaries are fixed by TierFor.
type Catalog map[types.CompatibilityTier]TierModels

// DefaultCatalog returns the reference catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		types.TierAll: {
			Capable: []string{
				"Llama 3 70B (4-bit)",
				"Mixtral 8x7B",
				"SDXL",
				"Llama 3 8B",
				"Mistral 7B",
			},
			Struggling: []string{},
		},
		types.TierMedium: {
			Capable: []string{
				"Llama 3 8B",
				"Mistral 7B",
				"SDXL",
				"Phi-3 Mini",
			},
			Struggling: []string{
				"Llama 3 70B (4-bit)",
				"Mixtral 8x7B",
			},
		},
		types.TierSmallMedium: {
			Capable: []string{
				"Mistral 7B (4-bit)",
				"Stable Diffusion 1.5",
				"Phi-3 Mini",
			},
			Struggling: []string{
				"13B+ models",
				"SDXL",
			},
		},
		types.TierSmall: {
			Capable: []string{
				"Phi-3 Mini",
				"Stable Diffusion 1.5 (low VRAM)",
			},
			Struggling: []string{
				"Mistral 7B",
				"SDXL",
			},
		},
		types.TierMinimal: {
			Capable: []string{
				"TinyLlama 1.1B",
				"Phi-2 (4-bit)",
			},
			Struggling: []string{},
		},
	}
}

// Merge returns a copy of c with every tier present in overrides replaced.
// Tiers with neither list set in overrides are ignored.
func (c Catalog) Merge(overrides Catalog) Catalog {
	merged := c.Clone()
	for tier, models := range overrides {
		if models.Capable == nil && models.Struggling == nil {
			continue
		}
		merged[tier] = TierModels{
			Capable:    nonNil(models.Capable),
			Struggling: nonNil(models.Struggling),
		}
	}
	return merged
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for tier, models := range c {
		out[tier] = TierModels{
			Capable:    nonNil(models.Capable),
			Struggling: nonNil(models.Struggling),
		}
	}
	return out
}

// Models returns the lists for tier, or empty lists if the tier is absent.
// The returned slices are copies.
func (c Catalog) Models(tier types.CompatibilityTier) TierModels {
	models := c[tier]
	return TierModels{
		Capable:    nonNil(models.Capable),
		Struggling: nonNil(models.Struggling),
	}
}

// AllModels returns every model class named anywhere in the catalog,
// deduplicated and sorted.
func (c Catalog) AllModels() []string {
	var all []string
	for _, models := range c {
		all = append(all, models.Capable...)
		all = append(all, models.Struggling...)
	}
	slices.Sort(all)
	return nonNil(slices.Compact(all))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
