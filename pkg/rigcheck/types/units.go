package types

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
)

// BytesToGB converts a byte count to (binary) gigabytes.
func BytesToGB(bytes uint64) float64 {
	return float64(bytes) / float64(GiB)
}

// MiBToGB converts mebibytes, as reported by nvidia-smi, to gigabytes.
func MiBToGB(mib float64) float64 {
	return mib / 1024
}

// FormatGB renders a gigabyte quantity as a human-readable size using
// binary (IEC) units, e.g. "24 GiB" or "512 MiB".
func FormatGB(gb float64) string {
	if gb <= 0 || math.IsNaN(gb) || math.IsInf(gb, 0) {
		return "0 B"
	}
	bytes := gb * float64(GiB)
	if bytes >= math.MaxUint64 {
		return humanize.IBytes(math.MaxUint64)
	}
	return humanize.IBytes(uint64(bytes))
}
