// Package config loads rigcheck settings from a YAML file, RIGCHECK_*
// environment variables and command-line flags, in increasing precedence.
package config

import "time"

// Default configuration values.
const (
	// DefaultOutput is the report format.
	DefaultOutput = "pretty"

	// DefaultNvidiaSMI is looked up on PATH.
	DefaultNvidiaSMI = "nvidia-smi"

	// DefaultProbeTimeout bounds each external probe command.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultRetentionDays is how long assessment history is kept.
	DefaultRetentionDays = 90

	// EnvPrefix prefixes environment overrides, e.g. RIGCHECK_OUTPUT=json.
	EnvPrefix = "RIGCHECK"

	appName        = "rigcheck"
	configFileName = "config.yaml"
)

// DefaultLogComponents are the per-component log levels written by
// WriteDefault.
var DefaultLogComponents = map[string]string{
	"probe":   "info",
	"assess":  "info",
	"history": "info",
	"cli":     "info",
}
