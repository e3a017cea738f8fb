//go:build linux

package probe

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxClockGHz prefers cpufreq's cpuinfo_max_freq (kHz) across all CPUs and
// falls back to the highest "cpu MHz" line in /proc/cpuinfo, which reports
// the current rather than the rated clock.
func maxClockGHz(sysfsRoot, procRoot string) (float64, error) {
	matches, _ := filepath.Glob(filepath.Join(sysfsRoot, "devices", "system", "cpu", "cpu[0-9]*", "cpufreq", "cpuinfo_max_freq"))
	var best float64
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		khz, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil {
			continue
		}
		best = max(best, khz/1e6)
	}
	if best > 0 {
		return best, nil
	}
	return cpuinfoMHz(filepath.Join(procRoot, "cpuinfo"))
}

func cpuinfoMHz(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var best float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			best = max(best, mhz/1000)
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if best == 0 {
		return 0, errors.New("no clock speed in " + path)
	}
	return best, nil
}
