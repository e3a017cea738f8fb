package types

import (
	"errors"
	"fmt"
	"strings"
)

// Rating is the qualitative band derived from the total score.
// Higher values are better.
type Rating int

// Rating bands from worst to best.
const (
	RatingPoor Rating = iota
	RatingFair
	RatingGood
	RatingExcellent
)

// ErrInvalidRating is returned when a rating string cannot be parsed.
var ErrInvalidRating = errors.New("invalid rating")

// String returns the upper-case band name.
func (r Rating) String() string {
	switch r {
	case RatingPoor:
		return "POOR"
	case RatingFair:
		return "FAIR"
	case RatingGood:
		return "GOOD"
	case RatingExcellent:
		return "EXCELLENT"
	default:
		return "UNKNOWN"
	}
}

// AtLeast reports whether r is the same as or better than min.
func (r Rating) AtLeast(min Rating) bool {
	return r >= min
}

// ParseRating parses a band name case-insensitively.
func ParseRating(s string) (Rating, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POOR":
		return RatingPoor, nil
	case "FAIR":
		return RatingFair, nil
	case "GOOD":
		return RatingGood, nil
	case "EXCELLENT":
		return RatingExcellent, nil
	default:
		return RatingPoor, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
}

// MarshalText encodes the rating by name for JSON and YAML.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rating name.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// CompatibilityTier names a model-compatibility class keyed on best-GPU VRAM.
type CompatibilityTier string

// Compatibility tiers from most to least capable.
const (
	TierAll         CompatibilityTier = "all"
	TierMedium      CompatibilityTier = "medium"
	TierSmallMedium CompatibilityTier = "small-medium"
	TierSmall       CompatibilityTier = "small"
	TierMinimal     CompatibilityTier = "minimal"
	TierCPUOnly     CompatibilityTier = "cpu-only"
)

// AllTiers lists every tier in order from most to least capable.
var AllTiers = []CompatibilityTier{
	TierAll,
	TierMedium,
	TierSmallMedium,
	TierSmall,
	TierMinimal,
	TierCPUOnly,
}

// Description returns a short human-readable description of the tier.
func (t CompatibilityTier) Description() string {
	switch t {
	case TierAll:
		return "all evaluated model classes"
	case TierMedium:
		return "medium models"
	case TierSmallMedium:
		return "small and medium models"
	case TierSmall:
		return "small models"
	case TierMinimal:
		return "small models only"
	case TierCPUOnly:
		return "no dedicated GPU: CPU-only, very slow"
	default:
		return string(t)
	}
}
