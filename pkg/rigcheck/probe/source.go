package probe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// Vendor is a PCI vendor ID in lower-case hex.
type Vendor string

// Known GPU vendors.
const (
	VendorNVIDIA Vendor = "10de"
	VendorAMD    Vendor = "1002"
	VendorIntel  Vendor = "8086"
)

// GPUDevice is a display device found by PCI enumeration. VRAMGB is zero
// when the device exposes no dedicated memory size.
type GPUDevice struct {
	Name    string
	Vendor  Vendor
	Address string
	VRAMGB  float64
}

// Source reads raw hardware facts for one category at a time.
type Source interface {
	CPU() (*types.CPUInfo, error)
	RAM() (*types.RAMInfo, error)
	GPUs() ([]GPUDevice, error)
	Disk(path string) (*types.DiskInfo, error)
}

// SystemSource reads the local machine through ghw, sysfs and the
// platform's filesystem statistics.
type SystemSource struct {
	// SysfsRoot is the sysfs mount point, normally "/sys".
	SysfsRoot string

	// ProcRoot is the procfs mount point, normally "/proc".
	ProcRoot string
}

// NewSystemSource returns a source for the running machine.
func NewSystemSource() *SystemSource {
	return &SystemSource{SysfsRoot: "/sys", ProcRoot: "/proc"}
}

// CPU reads the processor model, core and thread counts, and the maximum
// clock. The clock may be zero when the platform does not expose it.
func (s *SystemSource) CPU() (*types.CPUInfo, error) {
	info, err := s.ghwCPU()
	if err != nil {
		// ghw does not cover every platform; fall back to native calls.
		fallback, ferr := platformCPU()
		if ferr != nil {
			return nil, errors.Join(err, ferr)
		}
		info = fallback
	}
	if info.MaxClockGHz == 0 {
		if ghz, err := maxClockGHz(s.SysfsRoot, s.ProcRoot); err == nil {
			info.MaxClockGHz = ghz
		}
	}
	return info, nil
}

func (s *SystemSource) ghwCPU() (*types.CPUInfo, error) {
	cpu, err := ghw.CPU(ghw.WithDisableWarnings())
	if err != nil {
		return nil, fmt.Errorf("reading cpu info: %w", err)
	}
	if cpu.TotalCores == 0 {
		return nil, errors.New("no cpu cores reported")
	}
	info := &types.CPUInfo{
		Cores:             int(cpu.TotalCores),
		LogicalProcessors: int(cpu.TotalThreads),
	}
	if len(cpu.Processors) > 0 && cpu.Processors[0] != nil {
		info.Model = strings.TrimSpace(cpu.Processors[0].Model)
	}
	return info, nil
}

// RAM reads total physical memory.
func (s *SystemSource) RAM() (*types.RAMInfo, error) {
	mem, err := ghw.Memory(ghw.WithDisableWarnings())
	if err == nil && mem.TotalPhysicalBytes > 0 {
		return &types.RAMInfo{TotalGB: types.BytesToGB(uint64(mem.TotalPhysicalBytes))}, nil
	}
	if err == nil {
		err = errors.New("no physical memory reported")
	}

	total, ferr := platformMemory()
	if ferr != nil {
		return nil, errors.Join(fmt.Errorf("reading memory info: %w", err), ferr)
	}
	return &types.RAMInfo{TotalGB: types.BytesToGB(total)}, nil
}

// GPUs enumerates PCI display devices. VRAM is filled from the amdgpu
// sysfs attribute where present; NVIDIA sizes come from nvidia-smi instead.
func (s *SystemSource) GPUs() ([]GPUDevice, error) {
	info, err := ghw.GPU(ghw.WithDisableWarnings())
	if err != nil {
		return nil, fmt.Errorf("reading gpu info: %w", err)
	}

	var devices []GPUDevice
	for _, card := range info.GraphicsCards {
		if card == nil {
			continue
		}
		dev := GPUDevice{Address: card.Address, Name: fmt.Sprintf("GPU %d", card.Index)}
		if d := card.DeviceInfo; d != nil {
			var vendorName, productName string
			if d.Vendor != nil {
				dev.Vendor = Vendor(strings.ToLower(d.Vendor.ID))
				vendorName = d.Vendor.Name
			}
			if d.Product != nil {
				productName = d.Product.Name
			}
			dev.Name = deviceName(vendorName, productName, dev.Name)
		}
		if dev.Vendor != VendorNVIDIA && dev.Address != "" {
			if gb, err := readVRAM(s.SysfsRoot, dev.Address); err == nil {
				dev.VRAMGB = gb
			}
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

// Disk reads free and total space for the volume holding path.
func (s *SystemSource) Disk(path string) (*types.DiskInfo, error) {
	free, total, err := diskSpace(path)
	if err != nil {
		return nil, fmt.Errorf("reading disk space for %s: %w", path, err)
	}
	return &types.DiskInfo{
		Path:    path,
		FreeGB:  types.BytesToGB(free),
		TotalGB: types.BytesToGB(total),
	}, nil
}

func deviceName(vendor, product, fallback string) string {
	vendor = shortVendor(vendor)
	switch {
	case product == "" || product == "unknown":
		return fallback
	case vendor == "" || strings.Contains(strings.ToLower(product), strings.ToLower(vendor)):
		return product
	default:
		return vendor + " " + product
	}
}

func shortVendor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvidia"):
		return "NVIDIA"
	case strings.Contains(lower, "advanced micro devices"), strings.Contains(lower, "amd"):
		return "AMD"
	case strings.Contains(lower, "intel"):
		return "Intel"
	case lower == "unknown":
		return ""
	default:
		return name
	}
}

// readVRAM reads the amdgpu mem_info_vram_total attribute (bytes) for the
// PCI device at address.
func readVRAM(sysfsRoot, address string) (float64, error) {
	path := filepath.Join(sysfsRoot, "bus", "pci", "devices", address, "mem_info_vram_total")
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return types.BytesToGB(n), nil
}
