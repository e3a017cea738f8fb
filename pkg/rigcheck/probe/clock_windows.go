//go:build windows

package probe

import (
	"golang.org/x/sys/windows/registry"
)

const processorKey = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`

// maxClockGHz reads the rated clock the firmware reports for CPU 0.
func maxClockGHz(_, _ string) (float64, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, processorKey, registry.QUERY_VALUE)
	if err != nil {
		return 0, err
	}
	defer k.Close()

	mhz, _, err := k.GetIntegerValue("~MHz")
	if err != nil {
		return 0, err
	}
	return float64(mhz) / 1000, nil
}
