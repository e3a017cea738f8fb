package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage rigcheck configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/rigcheck/config.yaml (if set)
  2. ~/.config/rigcheck/config.yaml

Environment variables can override config file settings using the RIGCHECK_ prefix:
  RIGCHECK_OUTPUT=json
  RIGCHECK_MIN_RATING=GOOD
  RIGCHECK_PROBE_NVIDIA_SMI=/usr/bin/nvidia-smi
  RIGCHECK_HISTORY_ENABLED=false`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging file, environment and flags.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a commented default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Fprintf(out, "# Config file: %s\n", file)
	} else {
		fmt.Fprintln(out, "# Config file: (using defaults, no file found)")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "# Warning: %v\n", err)
	}

	data, err := yaml.Marshal(effectiveSettings(cfg))
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(out, string(data))

	overrides := envOverrides()
	fmt.Fprintln(out, "\n# Environment overrides:")
	if len(overrides) == 0 {
		fmt.Fprintln(out, "#   (none)")
	}
	for _, kv := range overrides {
		fmt.Fprintf(out, "#   %s\n", kv)
	}
	return nil
}

// effectiveSettings is the YAML shown by config show, keyed the same way
// as the config file.
func effectiveSettings(cfg *config.Config) map[string]any {
	catalog, _ := cfg.ModelCatalog()
	tiers := make(map[string]any, len(catalog))
	for tier, models := range catalog {
		tiers[string(tier)] = models
	}

	return map[string]any{
		"output":     cfg.Output,
		"template":   cfg.Template,
		"disk_path":  cfg.DiskPath,
		"min_rating": cfg.MinRating,
		"probe": map[string]any{
			"nvidia_smi":         cfg.Probe.NvidiaSMI,
			"disable_nvidia_smi": cfg.Probe.DisableNvidiaSMI,
			"timeout":            cfg.Probe.Timeout.String(),
		},
		"history": map[string]any{
			"enabled":        cfg.History.Enabled,
			"path":           cfg.History.Path,
			"retention_days": cfg.History.RetentionDays,
		},
		"logging": map[string]any{
			"level":      cfg.Logging.Level,
			"path":       cfg.Logging.Path,
			"components": cfg.Logging.Components,
			"rotation": map[string]any{
				"max_size":    cfg.Logging.Rotation.MaxSize,
				"max_age":     cfg.Logging.Rotation.MaxAge,
				"max_backups": cfg.Logging.Rotation.MaxBackups,
				"daily":       cfg.Logging.Rotation.Daily,
			},
		},
		"catalog": tiers,
	}
}

// envOverrides lists the RIGCHECK_ variables that are set, sorted.
func envOverrides() []string {
	prefix := config.EnvPrefix + "_"
	var vars []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			vars = append(vars, kv)
		}
	}
	slices.Sort(vars)
	return vars
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, _, err := config.WriteDefault()
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	printVerbose("Opening %s with %s", path, editor)

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, written, err := config.WriteDefault()
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if !written {
		printInfo("Config file already exists: %s", path)
		printInfo("Use 'rigcheck config edit' to modify it.")
		return nil
	}
	printInfo("Created default config file: %s", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if cfgFile != "" {
		path = cfgFile
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if _, err := os.Stat(path); err == nil {
		printVerbose("File exists")
	} else if os.IsNotExist(err) {
		printVerbose("File does not exist (will use defaults)")
	}
	return nil
}
