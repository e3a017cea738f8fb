package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
)

// initializeLogging is the PersistentPreRunE hook. It configures the
// component loggers from the loaded configuration; --verbose adds debug
// output on stderr.
func initializeLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Rotation:   parseRotationConfig(cfg.Logging.Rotation),
		Components: cfg.Logging.Components,
	}
	if logCfg.Path == "" {
		logCfg.Path = logging.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(logCfg.Path), 0o755); err != nil {
		// A read-only home should not stop an assessment.
		logCfg.DisableFile = true
	}
	if getVerbose() {
		logCfg.ConsoleLevel = "debug"
	}

	if err := logging.Init(logCfg); err != nil {
		// A bad logging section must not lock out the config commands.
		printError("invalid logging configuration, using defaults: %v", err)
		fallback := logging.DefaultConfig()
		fallback.Path = logCfg.Path
		fallback.ConsoleLevel = logCfg.ConsoleLevel
		fallback.DisableFile = logCfg.DisableFile
		if err := logging.Init(fallback); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	logging.Get(logging.ComponentCLI).Debug("command started", "command", cmd.CommandPath())
	return nil
}

// parseRotationConfig converts the config file's rotation settings. An
// empty or invalid max_size falls back to the default.
func parseRotationConfig(cfg config.RotationConfig) logging.RotationConfig {
	rotation := logging.RotationConfig{
		MaxSize:    logging.DefaultRotationConfig().MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Daily:      cfg.Daily,
	}
	if cfg.MaxSize != "" {
		if size, err := logging.ParseSize(cfg.MaxSize); err == nil && size > 0 {
			rotation.MaxSize = size
		}
	}
	return rotation
}
