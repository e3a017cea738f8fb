//go:build !linux && !darwin && !windows

package probe

import "errors"

func maxClockGHz(_, _ string) (float64, error) {
	return 0, errors.New("clock speed not available on this platform")
}
