package probe

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// ErrNvidiaSMINotFound is returned when nvidia-smi is not installed.
var ErrNvidiaSMINotFound = errors.New("nvidia-smi not found")

var nvidiaQueryArgs = []string{
	"--query-gpu=name,memory.total",
	"--format=csv,noheader,nounits",
}

// QueryNvidia lists NVIDIA GPUs and their total memory using nvidia-smi.
func QueryNvidia(ctx context.Context, runner CommandRunner, binary string) ([]types.GPUInfo, error) {
	out, err := runner.Run(ctx, binary, nvidiaQueryArgs...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNvidiaSMINotFound, err)
		}
		return nil, fmt.Errorf("querying nvidia-smi: %w", err)
	}
	return ParseNvidiaSMI(out)
}

// ParseNvidiaSMI parses "name, memory.total" CSV rows with memory in MiB.
// Rows whose memory is not a number (for example "[N/A]") are skipped and
// reported in the returned error alongside the GPUs that did parse.
func ParseNvidiaSMI(out []byte) ([]types.GPUInfo, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var gpus []types.GPUInfo
	var errs []error
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return gpus, fmt.Errorf("parsing nvidia-smi output: %w", err)
		}
		if len(record) < 2 {
			errs = append(errs, fmt.Errorf("line %d: expected name and memory, got %q", line, strings.Join(record, ",")))
			continue
		}

		// A name containing a comma arrives split; memory is always last.
		name := strings.TrimSpace(strings.Join(record[:len(record)-1], ","))
		mem := strings.TrimSpace(record[len(record)-1])
		mib, err := strconv.ParseFloat(mem, 64)
		if err != nil || mib < 0 || math.IsNaN(mib) || math.IsInf(mib, 0) {
			errs = append(errs, fmt.Errorf("line %d: unreadable memory %q for %s", line, mem, name))
			continue
		}
		gpus = append(gpus, types.GPUInfo{Name: name, VRAMGB: types.MiBToGB(mib)})
	}
	return gpus, errors.Join(errs...)
}
