package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
)

// These tests share the package's global state and must not run in parallel.

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{input: "debug", want: logging.LevelDebug},
		{input: "INFO", want: logging.LevelInfo},
		{input: "", want: logging.LevelInfo},
		{input: "warning", want: logging.LevelWarn},
		{input: "warn", want: logging.LevelWarn},
		{input: "error", want: logging.LevelError},
		{input: "trace", want: logging.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, logging.ErrInvalidLevel)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_BeforeInitIsSilent(t *testing.T) {
	require.NoError(t, logging.Close())

	logger := logging.Get("silent-test")
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("dropped", "key", "value")
	})
	assert.Same(t, logger, logging.Get("silent-test"))
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rigcheck.log")

	require.NoError(t, logging.Init(logging.Config{Level: "debug", Path: path}))
	t.Cleanup(func() { _ = logging.Close() })

	logging.Get(logging.ComponentProbe).Debug("collected cpu", "cores", 8)
	require.NoError(t, logging.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collected cpu")
	assert.Contains(t, string(data), "probe")
	assert.Contains(t, string(data), "cores=8")
}

func TestInit_RebuildsExistingLoggers(t *testing.T) {
	early := logging.Get("early")

	var console bytes.Buffer
	require.NoError(t, logging.Init(logging.Config{
		Level:        "info",
		DisableFile:  true,
		ConsoleLevel: "info",
		Console:      &console,
	}))
	t.Cleanup(func() { _ = logging.Close() })

	early.Info("now visible")
	assert.Contains(t, console.String(), "now visible")
}

func TestInit_ComponentLevels(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, logging.Init(logging.Config{
		Level:        "warn",
		DisableFile:  true,
		ConsoleLevel: "debug",
		Console:      &console,
		Components:   map[string]string{logging.ComponentHistory: "debug"},
	}))
	t.Cleanup(func() { _ = logging.Close() })

	logging.Get(logging.ComponentHistory).Debug("history detail")
	logging.Get(logging.ComponentAssess).Debug("assess detail")

	// Console has its own level; component levels apply to the file logger.
	assert.Contains(t, console.String(), "history detail")
	assert.Contains(t, console.String(), "assess detail")
}

func TestInit_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
	}{
		{name: "bad level", cfg: logging.Config{Level: "loud", DisableFile: true}},
		{name: "bad component level", cfg: logging.Config{DisableFile: true, Components: map[string]string{"probe": "x"}}},
		{name: "bad console level", cfg: logging.Config{DisableFile: true, ConsoleLevel: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logging.Init(tt.cfg)
			assert.ErrorIs(t, err, logging.ErrInvalidLevel)
		})
	}
}

func TestWith(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, logging.Init(logging.Config{
		DisableFile:  true,
		ConsoleLevel: "info",
		Console:      &console,
	}))
	t.Cleanup(func() { _ = logging.Close() })

	logger := logging.Get(logging.ComponentCLI).With("run", "abc")
	logger.Info("assessment done")
	assert.Contains(t, console.String(), "run=abc")
	assert.Equal(t, logging.ComponentCLI, logger.Component())
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "rigcheck.log", filepath.Base(cfg.Path))
	assert.Equal(t, logging.DefaultRotationConfig(), cfg.Rotation)
}
