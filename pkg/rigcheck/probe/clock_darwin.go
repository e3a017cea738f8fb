//go:build darwin

package probe

import (
	"golang.org/x/sys/unix"
)

// maxClockGHz reads hw.cpufrequency_max. Apple silicon does not publish
// it, so the lookup fails there and the clock stays unknown.
func maxClockGHz(_, _ string) (float64, error) {
	hz, err := unix.SysctlUint64("hw.cpufrequency_max")
	if err != nil {
		return 0, err
	}
	return float64(hz) / 1e9, nil
}
