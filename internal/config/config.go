// Package config provides configuration management for s4m using Viper.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/paths"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides, e.g. S4M_GAME_DIR.
const EnvPrefix = "S4M"

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = 1

// Configuration keys.
const (
	KeyVersion     = "version"
	KeyGameDir     = "game_dir"
	KeyUserDir     = "user_dir"
	KeyBackupDir   = "backup_dir"
	KeyRetention   = "retention"
	KeyCatalogFile = "catalog_file"
)

// Keys lists the settable keys in display order.
var Keys = []string{KeyVersion, KeyGameDir, KeyUserDir, KeyBackupDir, KeyRetention, KeyCatalogFile}

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// GameDir is the game installation folder holding the DLC folders.
	GameDir string `mapstructure:"game_dir" yaml:"game_dir"`
	// UserDir is the game's user data folder holding Mods and saves.
	UserDir string `mapstructure:"user_dir" yaml:"user_dir"`
	// BackupDir receives manual backups.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`
	// Retention is the number of backups kept per label by prune.
	Retention int `mapstructure:"retention" yaml:"retention"`
	// CatalogFile optionally overrides DLC display names.
	CatalogFile string `mapstructure:"catalog_file" yaml:"catalog_file,omitempty"`
}

// ModsDir returns the Mods folder under UserDir.
func (c *Config) ModsDir() string {
	return paths.ModsDir(c.UserDir)
}

// SavesDir returns the saves folder under UserDir.
func (c *Config) SavesDir() string {
	return paths.SavesDir(c.UserDir)
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Init resets any previous Viper state.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault(KeyVersion, CurrentVersion)
	viper.SetDefault(KeyGameDir, paths.DefaultGameDir())
	viper.SetDefault(KeyUserDir, paths.DefaultUserDir())
	viper.SetDefault(KeyBackupDir, paths.DefaultBackupDir())
	viper.SetDefault(KeyRetention, archive.DefaultRetentionCount)
	viper.SetDefault(KeyCatalogFile, "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load; defaults apply.
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return Current()
}

// Current builds a Config from Viper's merged state (defaults, file,
// environment and bound flags) and validates it.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// FileUsed returns the config file Viper read, or the default location
// when none was read.
func FileUsed() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	return paths.ConfigFile()
}

// Get returns the effective value of key as a string.
func Get(key string) (string, error) {
	if !slices.Contains(Keys, key) {
		return "", unknownKey(key)
	}
	return viper.GetString(key), nil
}

// Set validates value for key and writes it to the config file at path,
// preserving the other keys already in the file. The directory is
// created if needed.
func Set(path, key, value string) error {
	if !slices.Contains(Keys, key) {
		return unknownKey(key)
	}

	var typed any = value
	switch key {
	case KeyVersion, KeyRetention:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Mark(errors.Newf("%s must be an integer, got %q", key, value), errors.ErrInvalidConfig)
		}
		typed = n
	}

	doc := make(map[string]any)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, "parsing %s", path)
		}
		if doc == nil {
			doc = make(map[string]any)
		}
	case !os.IsNotExist(err):
		return errors.FromOS(err, "reading config file")
	}
	doc[key] = typed
	if _, ok := doc[KeyVersion]; !ok {
		doc[KeyVersion] = CurrentVersion
	}

	// Validate the result before anything is written.
	probe := viper.New()
	for k, v := range doc {
		probe.Set(k, v)
	}
	var cfg Config
	if err := probe.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "unmarshaling config")
	}
	if errs := Validate(&cfg); len(errs) > 0 {
		return errors.Mark(errs[0], errors.ErrInvalidConfig)
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.FromOS(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAMLWithPerm(path, doc, 0o600); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	viper.Set(key, typed)
	return nil
}

// All returns the effective values of every key.
func All() map[string]any {
	out := make(map[string]any, len(Keys))
	for _, k := range Keys {
		out[k] = viper.Get(k)
	}
	return out
}

func unknownKey(key string) error {
	return errors.Mark(errors.Newf("unknown config key %q (valid: %v)", key, Keys), errors.ErrInvalidConfig)
}
