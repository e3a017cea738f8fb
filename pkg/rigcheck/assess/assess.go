// Package assess runs the assessment pipeline: validate an inventory, score
// it, and classify the result.
package assess

import (
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/scoring"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// Option configures an assessment.
type Option func(*options)

type options struct {
	engine *scoring.Engine
	mapper *recommend.Mapper
}

// WithEngine scores with a custom engine.
func WithEngine(e *scoring.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithCatalog classifies against a custom model catalog.
func WithCatalog(c recommend.Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.mapper = recommend.NewMapper(c)
		}
	}
}

// WithMapper classifies with an existing mapper.
func WithMapper(m *recommend.Mapper) Option {
	return func(o *options) {
		if m != nil {
			o.mapper = m
		}
	}
}

// Assess validates inv and produces its AssessmentResult. The only error is
// a wrapped types.ErrInvalidInventory; missing categories are not errors.
func Assess(inv types.HardwareInventory, opts ...Option) (types.AssessmentResult, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = scoring.NewEngine()
	}
	if o.mapper == nil {
		o.mapper = recommend.NewMapper(nil)
	}

	if err := inv.Validate(); err != nil {
		return types.AssessmentResult{}, err
	}

	breakdown := o.engine.Score(inv)
	rating, advice, report := o.mapper.Classify(breakdown.Total, scoring.BestGPUVRAM(inv.GPUs))

	return types.AssessmentResult{
		Breakdown:      breakdown,
		Rating:         rating,
		Recommendation: advice,
		Compatibility:  report,
	}, nil
}
