// Package config loads strata settings from strata.yaml, STRATA_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "strata"
	configFileType = "yaml"

	EnvPrefix    = "STRATA"
	EnvConfigDir = "STRATA_CONFIG_DIR"
	EnvDB        = "STRATA_DB"
)

// Keys in strata.yaml. The matching environment variable is the key
// upper-cased with the STRATA_ prefix, e.g. STRATA_SCAN_WORKERS.
const (
	KeyDBPath      = "db_path"
	KeyScanWorkers = "scan_workers"
	KeyLogLevel    = "log_level"
	KeyLogUseCases = "log_use_cases"
	KeyColor       = "color"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":            KeyDBPath,
	"workers":       KeyScanWorkers,
	"log-level":     KeyLogLevel,
	"log-use-cases": KeyLogUseCases,
	"color":         KeyColor,
}

// ColorMode selects when output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the resolved settings.
type Config struct {
	DBPath      string
	ScanWorkers int
	LogLevel    slog.Level
	LogUseCases bool
	Color       ColorMode

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

// homeDir is replaced in tests.
var homeDir = os.UserHomeDir

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() (Config, error) {
	home, err := homeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:      filepath.Join(home, ".strata", "strata.db"),
		ScanWorkers: 1,
		LogLevel:    slog.LevelInfo,
		Color:       ColorAuto,
	}, nil
}

// ResolveConfigDir returns the configuration directory:
// flag > STRATA_CONFIG_DIR > $XDG_CONFIG_HOME/strata > ~/.config/strata.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "strata"), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "strata"), nil
}

// Load reads strata.yaml from configDir and applies environment and flag
// overrides. Precedence is flag > env > file > default; only flags the user
// actually set take part. A missing config file is not an error. flags may
// be nil.
func Load(configDir string, flags *pflag.FlagSet) (Config, error) {
	def, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault(KeyDBPath, def.DBPath)
	v.SetDefault(KeyScanWorkers, def.ScanWorkers)
	v.SetDefault(KeyLogLevel, def.LogLevel.String())
	v.SetDefault(KeyLogUseCases, def.LogUseCases)
	v.SetDefault(KeyColor, string(def.Color))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyDBPath, EnvDB, EnvPrefix+"_DB_PATH"); err != nil {
		return Config{}, fmt.Errorf("binding %s: %w", EnvDB, err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
	}

	if configDir != "" {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DBPath:      v.GetString(KeyDBPath),
		ScanWorkers: v.GetInt(KeyScanWorkers),
		LogUseCases: v.GetBool(KeyLogUseCases),
		Color:       ColorMode(strings.ToLower(v.GetString(KeyColor))),
		ConfigFile:  v.ConfigFileUsed(),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be used.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%s must not be empty", KeyDBPath)
	}
	if c.ScanWorkers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyScanWorkers, c.ScanWorkers)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s must be auto, always or never, got %q", KeyColor, c.Color)
	}
	return nil
}
