package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/s4m/internal/catalog"
	"github.com/thoreinstein/s4m/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrNegativeRetention indicates a retention count below zero.
	ErrNegativeRetention = errors.New("retention must be >= 0")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Wrapf(ErrUnsupportedVersion, "%d", cfg.Version))
	}

	if cfg.Retention < 0 {
		errs = append(errs, ErrNegativeRetention)
	}

	for _, f := range []struct {
		field, path string
	}{
		{KeyGameDir, cfg.GameDir},
		{KeyUserDir, cfg.UserDir},
		{KeyBackupDir, cfg.BackupDir},
		{KeyCatalogFile, cfg.CatalogFile},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}

	if cfg.CatalogFile != "" {
		if _, err := catalog.FormatFromPath(cfg.CatalogFile); err != nil {
			errs = append(errs, &PathError{Field: KeyCatalogFile, Path: cfg.CatalogFile, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
