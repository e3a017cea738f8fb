// Package probe collects the hardware facts rigcheck scores: CPU cores and
// clock, total memory, GPUs with their VRAM, and free space on one volume.
// Nothing else is read, and nothing leaves the machine.
//
// Each category is collected independently. A category that cannot be read
// is left empty, a warning is recorded on the inventory, and the error is
// returned joined with the others so callers can still score what was found.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// DefaultTimeout bounds external commands such as nvidia-smi.
const DefaultTimeout = 10 * time.Second

// Options configures a Probe. The zero value probes the default volume
// with nvidia-smi from PATH.
type Options struct {
	// DiskPath selects the volume whose free space is scored.
	DiskPath string

	// NvidiaSMI is the nvidia-smi executable. Empty means "nvidia-smi".
	NvidiaSMI string

	// DisableNvidiaSMI skips the nvidia-smi query.
	DisableNvidiaSMI bool

	// Timeout bounds each external command.
	Timeout time.Duration

	// Runner executes external commands. Nil uses ExecRunner.
	Runner CommandRunner

	// Source reads CPU, memory, GPU and disk facts. Nil uses SystemSource.
	Source Source
}

// Probe collects a HardwareInventory.
type Probe struct {
	opts Options
	log  *logging.Logger
}

// New creates a probe, filling unset options with defaults.
func New(opts Options) *Probe {
	if opts.DiskPath == "" {
		opts.DiskPath = DefaultDiskPath()
	}
	if opts.NvidiaSMI == "" {
		opts.NvidiaSMI = "nvidia-smi"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Source == nil {
		opts.Source = NewSystemSource()
	}
	return &Probe{opts: opts, log: logging.Get(logging.ComponentProbe)}
}

// Collect probes every category. The inventory is always usable; a non-nil
// error reports the categories that could not be read.
func (p *Probe) Collect(ctx context.Context) (types.HardwareInventory, error) {
	inv := types.HardwareInventory{CollectedAt: time.Now().UTC()}
	if host, err := os.Hostname(); err == nil {
		inv.Hostname = host
	}

	var errs []error
	fail := func(category string, err error) {
		err = fmt.Errorf("probing %s: %w", category, err)
		p.log.Warn("probe failed", "category", category, "error", err)
		inv.Warnings = append(inv.Warnings, err.Error())
		errs = append(errs, err)
	}
	note := func(msg string) {
		p.log.Info(msg)
		inv.Warnings = append(inv.Warnings, msg)
	}

	if cpu, err := p.opts.Source.CPU(); err != nil {
		fail("cpu", err)
	} else {
		inv.CPU = cpu
		p.log.Debug("cpu collected", "model", cpu.Model, "cores", cpu.Cores, "threads", cpu.LogicalProcessors, "max_ghz", cpu.MaxClockGHz)
		if cpu.MaxClockGHz == 0 {
			note("cpu clock speed unavailable; scored at the lowest tier")
		}
	}

	if ram, err := p.opts.Source.RAM(); err != nil {
		fail("memory", err)
	} else {
		inv.RAM = ram
		p.log.Debug("memory collected", "total_gb", ram.TotalGB)
	}

	gpus, skipped, err := p.collectGPUs(ctx)
	if err != nil {
		fail("gpu", err)
	}
	inv.GPUs = gpus
	for _, name := range skipped {
		note(fmt.Sprintf("gpu %q has no readable dedicated VRAM; not counted", name))
	}

	if disk, err := p.opts.Source.Disk(p.opts.DiskPath); err != nil {
		fail("disk", err)
	} else {
		inv.Disk = disk
		p.log.Debug("disk collected", "path", disk.Path, "free_gb", disk.FreeGB, "total_gb", disk.TotalGB)
	}

	return inv, errors.Join(errs...)
}

// collectGPUs merges nvidia-smi results with the PCI display devices the
// source enumerates. nvidia-smi is authoritative for NVIDIA cards. Other
// cards are kept only when their VRAM can be read; the names of cards that
// were dropped are returned as skipped.
func (p *Probe) collectGPUs(ctx context.Context) (gpus []types.GPUInfo, skipped []string, err error) {
	var nvidia []types.GPUInfo
	if !p.opts.DisableNvidiaSMI {
		qctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
		nvidia, err = QueryNvidia(qctx, p.opts.Runner, p.opts.NvidiaSMI)
		cancel()
		switch {
		case errors.Is(err, ErrNvidiaSMINotFound):
			p.log.Debug("nvidia-smi not found", "binary", p.opts.NvidiaSMI)
			err = nil
		case err != nil:
			p.log.Warn("nvidia-smi query failed", "error", err)
		default:
			p.log.Debug("nvidia-smi reported gpus", "count", len(nvidia))
		}
	}
	gpus = append(gpus, nvidia...)

	devices, devErr := p.opts.Source.GPUs()
	if devErr != nil {
		// Enumeration is not needed when nvidia-smi already answered.
		if len(nvidia) == 0 {
			return gpus, nil, errors.Join(err, devErr)
		}
		p.log.Debug("gpu enumeration failed", "error", devErr)
	}

	for _, dev := range devices {
		if dev.Vendor == VendorNVIDIA && len(nvidia) > 0 {
			continue
		}
		if dev.VRAMGB <= 0 {
			skipped = append(skipped, dev.Name)
			continue
		}
		gpus = append(gpus, types.GPUInfo{Name: dev.Name, VRAMGB: dev.VRAMGB})
	}
	return gpus, skipped, err
}
