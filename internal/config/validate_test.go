package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{Version: 1, GameDir: "/g", UserDir: "/u", BackupDir: "/b", Retention: 5}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantN   int
	}{
		{"valid", func(*Config) {}, nil, 0},
		{"version zero", func(c *Config) { c.Version = 0 }, ErrUnsupportedVersion, 1},
		{"negative retention", func(c *Config) { c.Retention = -1 }, ErrNegativeRetention, 1},
		{"null byte path", func(c *Config) { c.UserDir = "/u\x00x" }, ErrInvalidPath, 1},
		{"dot path", func(c *Config) { c.BackupDir = "." }, ErrInvalidPath, 1},
		{"empty paths mean default", func(c *Config) { c.GameDir, c.UserDir = "", "" }, nil, 0},
		{"catalog yaml", func(c *Config) { c.CatalogFile = "/c/names.yml" }, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			errs := Validate(&cfg)
			if len(errs) != tt.wantN {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantN, errs)
			}
			if tt.wantErr != nil && !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", errs[0], tt.wantErr)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v", errs)
	}
}

func TestPathError(t *testing.T) {
	err := &PathError{Field: "user_dir", Path: "bad", Err: ErrInvalidPath}
	if err.Error() != "user_dir: invalid path: bad" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidPath) {
		t.Error("PathError should unwrap to ErrInvalidPath")
	}
}
