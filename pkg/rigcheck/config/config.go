package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/recommend"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// ProbeConfig configures hardware collection.
type ProbeConfig struct {
	NvidiaSMI        string        `mapstructure:"nvidia_smi"`
	DisableNvidiaSMI bool          `mapstructure:"disable_nvidia_smi"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// HistoryConfig configures the local assessment history.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Config is the merged configuration.
type Config struct {
	Output    string `mapstructure:"output"`
	Template  string `mapstructure:"template"`
	DiskPath  string `mapstructure:"disk_path"`
	MinRating string `mapstructure:"min_rating"`

	Probe   ProbeConfig   `mapstructure:"probe"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Catalog replaces the model lists of individual compatibility tiers.
	Catalog map[string]recommend.TierModels `mapstructure:"catalog"`
}

// ErrInvalidConfig wraps configuration values that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Setup prepares v: config file search paths (or the explicit file),
// environment binding and defaults. It then reads the file; a missing file
// is not an error.
func Setup(v *viper.Viper, file string) error {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
		v.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("template", "")
	v.SetDefault("disk_path", "")
	v.SetDefault("min_rating", "")

	v.SetDefault("probe.nvidia_smi", DefaultNvidiaSMI)
	v.SetDefault("probe.disable_nvidia_smi", false)
	v.SetDefault("probe.timeout", DefaultProbeTimeout)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("history.retention_days", DefaultRetentionDays)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.rotation.max_size", "5MiB")
	v.SetDefault("logging.rotation.max_age", 14)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.daily", false)
}

// Decode unmarshals v into a Config and fills derived paths. It does not
// validate, so commands that never read a bad value still run; call
// Validate before using the values.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var err error
	if cfg.History.Path, err = ExpandPath(cfg.History.Path); err != nil {
		return nil, err
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath()
	}
	if cfg.Logging.Path, err = ExpandPath(cfg.Logging.Path); err != nil {
		return nil, err
	}
	if cfg.DiskPath, err = ExpandPath(cfg.DiskPath); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from file (or the default locations when file
// is empty) and the environment, and validates it.
func Load(file string) (*Config, error) {
	v := viper.New()
	if err := Setup(v, file); err != nil {
		return nil, err
	}
	cfg, err := Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, _, err := c.Threshold(); err != nil {
		return err
	}
	if c.Probe.Timeout < 0 {
		return fmt.Errorf("%w: probe.timeout must not be negative", ErrInvalidConfig)
	}
	if c.History.RetentionDays < 0 {
		return fmt.Errorf("%w: history.retention_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.ModelCatalog(); err != nil {
		return err
	}
	return nil
}

// Threshold returns the configured minimum rating. ok is false when no
// threshold is set.
func (c *Config) Threshold() (rating types.Rating, ok bool, err error) {
	if strings.TrimSpace(c.MinRating) == "" {
		return types.RatingPoor, false, nil
	}
	rating, err = types.ParseRating(c.MinRating)
	if err != nil {
		return rating, false, fmt.Errorf("%w: min_rating: %w", ErrInvalidConfig, err)
	}
	return rating, true, nil
}

// ModelCatalog returns the default catalog with configured tiers replaced.
// The cpu-only tier is derived from the others and cannot be configured.
func (c *Config) ModelCatalog() (recommend.Catalog, error) {
	overrides := make(recommend.Catalog, len(c.Catalog))
	for name, models := range c.Catalog {
		tier := types.CompatibilityTier(strings.ToLower(name))
		if !slices.Contains(types.AllTiers, tier) || tier == types.TierCPUOnly {
			return nil, fmt.Errorf("%w: unknown catalog tier %q", ErrInvalidConfig, name)
		}
		overrides[tier] = models
	}
	return recommend.DefaultCatalog().Merge(overrides), nil
}

// ConfigDir returns $XDG_CONFIG_HOME/rigcheck, or ~/.config/rigcheck.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the default config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DataDir returns $XDG_DATA_HOME/rigcheck.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// DefaultHistoryPath returns the badger directory for assessment history.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
