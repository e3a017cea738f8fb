//go:build !darwin

package probe

import (
	"errors"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

var errNoFallback = errors.New("no native fallback on this platform")

func platformCPU() (*types.CPUInfo, error) { return nil, errNoFallback }

func platformMemory() (uint64, error) { return 0, errNoFallback }
