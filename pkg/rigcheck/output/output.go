// Package output renders assessment reports in several formats (pretty,
// plain, json, yaml, markdown, csv, template). Formatters register
// themselves by name and are selected at runtime:
//
//	f, err := output.Get("json")
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	if err := f.Format(&buf, report); err != nil {
//	    return err
//	}
package output

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/scoring"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// Report is everything a formatter can show about one assessment.
type Report struct {
	Inventory types.HardwareInventory
	Result    types.AssessmentResult

	// RecordID is the history record ID, empty when history is off.
	RecordID string
}

// BestGPU returns the GPU that was scored.
func (r *Report) BestGPU() (types.GPUInfo, bool) {
	return scoring.BestGPU(r.Inventory.GPUs)
}

// Category is one row of the score table.
type Category struct {
	Name  string
	Score int
	Max   int
}

// Categories returns the four scored categories in display order.
func (r *Report) Categories() []Category {
	b := r.Result.Breakdown
	return []Category{
		{Name: "CPU", Score: b.CPU, Max: types.MaxCPUScore},
		{Name: "RAM", Score: b.RAM, Max: types.MaxRAMScore},
		{Name: "GPU", Score: b.GPU, Max: types.MaxGPUScore},
		{Name: "Disk", Score: b.Disk, Max: types.MaxDiskScore},
	}
}

// CollectedAt returns the collection time, or the zero time.
func (r *Report) CollectedAt() time.Time {
	return r.Inventory.CollectedAt
}

// Formatter renders a report.
type Formatter interface {
	Format(w *bytes.Buffer, r *Report) error
}

// FormatterFactory creates a Formatter.
type FormatterFactory func() Formatter

// ErrUnknownFormatter is returned by Get for unregistered names.
var ErrUnknownFormatter = errors.New("unknown formatter")

// Registry maps names to formatter factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds or replaces a formatter.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFormatter, name, r.available())
	}
	return factory(), nil
}

// Available returns the registered names, sorted.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available()
}

func (r *Registry) available() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry holds the built-in formatters.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to DefaultRegistry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a formatter from DefaultRegistry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available lists DefaultRegistry's formatters.
func Available() []string {
	return DefaultRegistry.Available()
}
