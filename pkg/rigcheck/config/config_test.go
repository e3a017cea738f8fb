package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func writeConfig(t *testing.T, home, content string) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "rigcheck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if cfg.Probe.NvidiaSMI != DefaultNvidiaSMI {
		t.Errorf("Probe.NvidiaSMI = %q, want %q", cfg.Probe.NvidiaSMI, DefaultNvidiaSMI)
	}
	if cfg.Probe.Timeout != DefaultProbeTimeout {
		t.Errorf("Probe.Timeout = %v, want %v", cfg.Probe.Timeout, DefaultProbeTimeout)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.History.RetentionDays != DefaultRetentionDays {
		t.Errorf("History.RetentionDays = %d, want %d", cfg.History.RetentionDays, DefaultRetentionDays)
	}
	if cfg.History.Path != DefaultHistoryPath() {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, DefaultHistoryPath())
	}
	if _, ok, _ := cfg.Threshold(); ok {
		t.Error("Threshold() ok = true, want false without min_rating")
	}
}

func TestLoad_FromFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `
output: json
disk_path: ~/models
min_rating: good
probe:
  nvidia_smi: /opt/nvidia/bin/nvidia-smi
  timeout: 3s
history:
  enabled: false
  retention_days: 7
catalog:
  minimal:
    capable: [Qwen2 0.5B]
    struggling: [Phi-3 Mini]
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if want := filepath.Join(home, "models"); cfg.DiskPath != want {
		t.Errorf("DiskPath = %q, want %q", cfg.DiskPath, want)
	}
	if cfg.Probe.NvidiaSMI != "/opt/nvidia/bin/nvidia-smi" {
		t.Errorf("Probe.NvidiaSMI = %q", cfg.Probe.NvidiaSMI)
	}
	if cfg.Probe.Timeout != 3*time.Second {
		t.Errorf("Probe.Timeout = %v, want 3s", cfg.Probe.Timeout)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	if cfg.History.RetentionDays != 7 {
		t.Errorf("History.RetentionDays = %d, want 7", cfg.History.RetentionDays)
	}

	rating, ok, err := cfg.Threshold()
	if err != nil || !ok || rating != types.RatingGood {
		t.Errorf("Threshold() = %v, %v, %v; want GOOD, true, nil", rating, ok, err)
	}

	catalog, err := cfg.ModelCatalog()
	if err != nil {
		t.Fatalf("ModelCatalog() error = %v", err)
	}
	minimal := catalog.Models(types.TierMinimal)
	if len(minimal.Capable) != 1 || minimal.Capable[0] != "Qwen2 0.5B" {
		t.Errorf("minimal capable = %v, want [Qwen2 0.5B]", minimal.Capable)
	}
	// Tiers absent from the file keep their defaults.
	want := recommend.DefaultCatalog().Models(types.TierAll)
	if got := catalog.Models(types.TierAll); len(got.Capable) != len(want.Capable) {
		t.Errorf("all capable = %v, want %v", got.Capable, want.Capable)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("output: csv\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "csv" {
		t.Errorf("Output = %q, want csv", cfg.Output)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil, want error for missing explicit file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "output: json\n")
	t.Setenv("RIGCHECK_OUTPUT", "yaml")
	t.Setenv("RIGCHECK_HISTORY_RETENTION_DAYS", "30")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "yaml" {
		t.Errorf("Output = %q, want yaml", cfg.Output)
	}
	if cfg.History.RetentionDays != 30 {
		t.Errorf("History.RetentionDays = %d, want 30", cfg.History.RetentionDays)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad rating", content: "min_rating: superb\n"},
		{name: "unknown tier", content: "catalog:\n  huge:\n    capable: [x]\n"},
		{name: "cpu-only tier", content: "catalog:\n  cpu-only:\n    capable: [x]\n"},
		{name: "negative retention", content: "history:\n  retention_days: -1\n"},
		{name: "negative timeout", content: "probe:\n  timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			writeConfig(t, home, tt.content)

			_, err := Load("")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSetup_Flags(t *testing.T) {
	isolate(t)
	v := viper.New()
	if err := Setup(v, ""); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	v.Set("output", "markdown")

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Output != "markdown" {
		t.Errorf("Output = %q, want markdown", cfg.Output)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != filepath.Join("/tmp/xdg", "rigcheck") {
			t.Errorf("ConfigDir() = %q", dir)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := isolate(t)
		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != filepath.Join(home, ".config", "rigcheck") {
			t.Errorf("ConfigDir() = %q", dir)
		}
	})
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/var/lib", want: "/var/lib"},
		{in: "~", want: home},
		{in: "~/models", want: filepath.Join(home, "models")},
		{in: "~user/x", want: "~user/x"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDefaultTo(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := WriteDefaultTo(path)
	if err != nil {
		t.Fatalf("WriteDefaultTo() error = %v", err)
	}
	if !written {
		t.Fatal("WriteDefaultTo() written = false on first call")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("default config is not valid YAML: %v", err)
	}
	if strings.Contains(string(data), "cpu-only:") {
		t.Error("default config lists the derived cpu-only tier")
	}

	// The written file loads back to the defaults.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(default) error = %v", err)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	catalog, err := cfg.ModelCatalog()
	if err != nil {
		t.Fatalf("ModelCatalog() error = %v", err)
	}
	def := recommend.DefaultCatalog()
	for _, tier := range types.AllTiers {
		if len(catalog.Models(tier).Capable) != len(def.Models(tier).Capable) {
			t.Errorf("tier %s capable = %v, want %v", tier, catalog.Models(tier).Capable, def.Models(tier).Capable)
		}
	}

	written, err = WriteDefaultTo(path)
	if err != nil {
		t.Fatalf("second WriteDefaultTo() error = %v", err)
	}
	if written {
		t.Error("WriteDefaultTo() overwrote an existing file")
	}
}
