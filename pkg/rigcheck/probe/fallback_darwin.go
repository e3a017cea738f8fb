//go:build darwin

package probe

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// platformCPU reads core counts and the brand string with sysctl.
func platformCPU() (*types.CPUInfo, error) {
	cores, err := unix.SysctlUint32("hw.physicalcpu")
	if err != nil {
		return nil, fmt.Errorf("sysctl hw.physicalcpu: %w", err)
	}
	threads, err := unix.SysctlUint32("hw.logicalcpu")
	if err != nil {
		threads = cores
	}
	model, _ := unix.Sysctl("machdep.cpu.brand_string")
	return &types.CPUInfo{
		Model:             strings.TrimSpace(model),
		Cores:             int(cores),
		LogicalProcessors: int(threads),
	}, nil
}

// platformMemory reads hw.memsize, the installed physical memory in bytes.
func platformMemory() (uint64, error) {
	memsize, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	return memsize, nil
}
