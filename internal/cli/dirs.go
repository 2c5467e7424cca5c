package cli

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/s4m/internal/catalog"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/errors"
)

// LoadConfig returns the effective configuration: defaults, config file,
// environment and bound flags merged.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Current()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// RequireDir checks that path names an existing directory. key is the
// config key the path came from and is used in the suggestion.
func RequireDir(path, key string) error {
	hint := "Run: s4m config set " + key + " <path>"
	if path == "" {
		err := errors.Mark(errors.Newf("%s is not set and could not be detected", key), errors.ErrSourceNotFound)
		return errors.NewUserError(err, hint)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.NewUserError(errors.FromOS(err, "checking "+key), hint)
	}
	if !info.IsDir() {
		err := errors.Mark(errors.Newf("%s is not a directory: %s", key, path), errors.ErrSourceNotFound)
		return errors.NewUserError(err, hint)
	}
	return nil
}

// GameDir returns the checked game installation folder.
func GameDir(cfg *config.Config) (string, error) {
	if err := RequireDir(cfg.GameDir, config.KeyGameDir); err != nil {
		return "", err
	}
	return cfg.GameDir, nil
}

// ModsDir returns the Mods folder inside the checked user data folder.
// The Mods folder itself may not exist yet; restore and install create it.
func ModsDir(cfg *config.Config) (string, error) {
	if err := RequireDir(cfg.UserDir, config.KeyUserDir); err != nil {
		return "", err
	}
	return cfg.ModsDir(), nil
}

// SavesDir returns the saves folder inside the checked user data folder.
func SavesDir(cfg *config.Config) (string, error) {
	if err := RequireDir(cfg.UserDir, config.KeyUserDir); err != nil {
		return "", err
	}
	return cfg.SavesDir(), nil
}

// Catalog loads the DLC label table named by the config, falling back to
// the built-in table with a warning when the file cannot be read.
func Catalog(cfg *config.Config, logger *slog.Logger) *catalog.Catalog {
	if cfg.CatalogFile == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Warn("using built-in DLC names", "file", cfg.CatalogFile, "error", err)
		return catalog.Default()
	}
	return c
}
