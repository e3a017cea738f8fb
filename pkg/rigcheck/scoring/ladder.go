// Package scoring turns a hardware inventory into per-category suitability
// scores. Each category is scored by an independent CategoryScorer and the
// engine reduces their results into a ScoreBreakdown.
//
// Thresholds live in ordered breakpoint tables so they can be recalibrated,
// and boundary-tested, without touching the scoring logic.
package scoring

// Breakpoint awards Points to any value at or above Min.
type Breakpoint struct {
	Min    float64
	Points int
}

// Ladder is a step function over ordered breakpoints. Breakpoints are
// evaluated highest-first and the first match wins; values below every
// breakpoint score Default.
type Ladder struct {
	Steps   []Breakpoint
	Default int
}

// Score returns the points for v.
func (l Ladder) Score(v float64) int {
	for _, step := range l.Steps {
		if v >= step.Min {
			return step.Points
		}
	}
	return l.Default
}

// Max returns the highest score the ladder can produce.
func (l Ladder) Max() int {
	best := l.Default
	for _, step := range l.Steps {
		best = max(best, step.Points)
	}
	return best
}

// Breakpoint tables.
var (
	// CoreLadder scores physical core count.
	CoreLadder = Ladder{
		Steps: []Breakpoint{
			{Min: 16, Points: 15},
			{Min: 12, Points: 12},
			{Min: 8, Points: 10},
			{Min: 6, Points: 8},
			{Min: 4, Points: 5},
		},
		Default: 2,
	}

	// ClockLadder scores maximum clock speed in GHz.
	ClockLadder = Ladder{
		Steps: []Breakpoint{
			{Min: 4.0, Points: 10},
			{Min: 3.5, Points: 8},
			{Min: 3.0, Points: 6},
			{Min: 2.5, Points: 4},
		},
		Default: 2,
	}

	// RAMLadder scores total memory in GB.
	RAMLadder = Ladder{
		Steps: []Breakpoint{
			{Min: 64, Points: 25},
			{Min: 32, Points: 20},
			{Min: 16, Points: 15},
			{Min: 8, Points: 10},
			{Min: 4, Points: 5},
		},
		Default: 0,
	}

	// VRAMLadder scores the best GPU's memory in GB.
	VRAMLadder = Ladder{
		Steps: []Breakpoint{
			{Min: 24, Points: 25},
			{Min: 16, Points: 20},
			{Min: 12, Points: 15},
			{Min: 8, Points: 12},
			{Min: 6, Points: 8},
			{Min: 4, Points: 5},
		},
		Default: 2,
	}

	// DiskLadder scores free space on the primary volume in GB.
	DiskLadder = Ladder{
		Steps: []Breakpoint{
			{Min: 100, Points: 10},
			{Min: 50, Points: 8},
			{Min: 20, Points: 6},
			{Min: 10, Points: 4},
		},
		Default: 2,
	}
)
