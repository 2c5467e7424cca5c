package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/s4m/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestConfigFile(t *testing.T) {
	got := ConfigFile()
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigFile() = %q, want absolute path", got)
	}
	if !strings.HasSuffix(got, filepath.Join(AppName, "config.yaml")) {
		t.Errorf("ConfigFile() = %q, want suffix s4m/config.yaml", got)
	}
}

func TestDefaultBackupDir(t *testing.T) {
	got := DefaultBackupDir()
	if !strings.HasPrefix(got, DataHome()) {
		t.Errorf("DefaultBackupDir() = %q, want under %q", got, DataHome())
	}
}

func TestFirstDir(t *testing.T) {
	base := t.TempDir()
	second := filepath.Join(base, "b")
	if err := os.MkdirAll(second, 0o755); err != nil {
		t.Fatal(err)
	}
	// A file with the first candidate's name must not count.
	if err := os.WriteFile(filepath.Join(base, "a"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := firstDir(base, []string{"a", "b"}); got != second {
		t.Errorf("firstDir() = %q, want %q", got, second)
	}
	if got := firstDir(base, []string{"missing"}); got != "" {
		t.Errorf("firstDir() = %q, want empty", got)
	}
}

func TestGameDirs(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) string
		userDir string
		want    string
	}{
		{"mods", ModsDir, "/games/ts4", filepath.Join("/games/ts4", "Mods")},
		{"saves", SavesDir, "/games/ts4", filepath.Join("/games/ts4", "saves")},
		{"mods empty", ModsDir, "", ""},
		{"saves empty", SavesDir, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.userDir); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", dir)
	}
}
