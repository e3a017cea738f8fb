package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

var defaultConfigTemplate = template.Must(template.New("config").Parse(`# rigcheck configuration

# Report format: pretty, plain, json, yaml, markdown, csv, template
output: {{ .Output }}

# Go template used when output is "template" (empty uses the built-in one)
template: ""

# Path whose filesystem is measured for free disk space (empty means / or the system drive)
disk_path: ""

# Exit non-zero when the rating is below this band: POOR, FAIR, GOOD, EXCELLENT
min_rating: ""

probe:
  # nvidia-smi binary used for NVIDIA VRAM
  nvidia_smi: {{ .NvidiaSMI }}
  disable_nvidia_smi: false
  # Timeout for each external command
  timeout: {{ .Timeout }}

# Local assessment history
history:
  enabled: true
  path: {{ .HistoryPath }}
  retention_days: {{ .RetentionDays }}

logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: {{ .LogPath }})
  path: ""
  rotation:
    max_size: 5MiB
    max_age: 14       # days
    max_backups: 3
    daily: false
  components:
{{- range $name, $level := .Components }}
    {{ $name }}: {{ $level }}
{{- end }}

# Model examples per compatibility tier
catalog:
{{ .Catalog }}`))

// WriteDefault writes a default config file to the default location.
// Returns the path and false if a config file already exists.
func WriteDefault() (string, bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", false, err
	}
	written, err := WriteDefaultTo(path)
	return path, written, err
}

// WriteDefaultTo writes the default config to path unless it exists.
func WriteDefaultTo(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	data, err := RenderDefault()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}
	return true, nil
}

// RenderDefault returns the commented default config file.
func RenderDefault() ([]byte, error) {
	catalog, err := renderCatalog(recommend.DefaultCatalog())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = defaultConfigTemplate.Execute(&buf, map[string]any{
		"Output":        DefaultOutput,
		"NvidiaSMI":     DefaultNvidiaSMI,
		"Timeout":       DefaultProbeTimeout.String(),
		"HistoryPath":   DefaultHistoryPath(),
		"RetentionDays": DefaultRetentionDays,
		"LogPath":       logging.DefaultLogPath(),
		"Components":    DefaultLogComponents,
		"Catalog":       catalog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render default config: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCatalog emits the configurable tiers in ladder order, indented
// under the catalog key.
func renderCatalog(c recommend.Catalog) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, tier := range types.AllTiers {
		if tier == types.TierCPUOnly {
			continue
		}
		var value yaml.Node
		if err := value.Encode(c.Models(tier)); err != nil {
			return "", fmt.Errorf("failed to encode catalog tier %s: %w", tier, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(tier)},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n", nil
}
