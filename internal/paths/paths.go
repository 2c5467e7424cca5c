package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "s4m"

// Folder names inside the game's user data directory.
const (
	ModsFolder  = "Mods"
	SavesFolder = "saves"
)

// userDirCandidates are the user data locations relative to the home
// directory, in lookup order.
var userDirCandidates = []string{
	filepath.Join("Documents", "Electronic Arts", "The Sims 4"),
	filepath.Join("Documents", "The Sims 4"),
}

// gameDirCandidates are common install locations, in lookup order. Entries
// starting with "~" are relative to the home directory.
var gameDirCandidates = []string{
	filepath.Join("C:"+string(filepath.Separator), "Program Files", "EA Games", "The Sims 4"),
	filepath.Join("C:"+string(filepath.Separator), "Program Files (x86)", "Origin Games", "The Sims 4"),
	filepath.Join("C:"+string(filepath.Separator), "Program Files (x86)", "Steam", "steamapps", "common", "The Sims 4"),
	filepath.Join("~", ".steam", "steam", "steamapps", "common", "The Sims 4"),
	filepath.Join("~", ".local", "share", "Steam", "steamapps", "common", "The Sims 4"),
	filepath.Join("/Applications", "The Sims 4.app", "Contents"),
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string if it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns <ConfigHome>/s4m.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path, <ConfigDir>/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultBackupDir returns the directory manual backups are written to
// when none is configured: <DataHome>/s4m/backups.
func DefaultBackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// DefaultUserDir returns the first existing game user data directory under
// the home directory, or an empty string when none exists.
func DefaultUserDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return firstDir(home, userDirCandidates)
}

// DefaultGameDir returns the first existing common game install location,
// or an empty string when none exists.
func DefaultGameDir() string {
	home := Home()
	for _, c := range gameDirCandidates {
		if rest, ok := strings.CutPrefix(c, "~"); ok {
			if home == "" {
				continue
			}
			c = filepath.Join(home, rest)
		}
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return ""
}

func firstDir(base string, candidates []string) string {
	for _, rel := range candidates {
		p := filepath.Join(base, rel)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return ""
}

// ModsDir returns the Mods folder inside a user data directory.
// Returns an empty string for an empty userDir.
func ModsDir(userDir string) string {
	if userDir == "" {
		return ""
	}
	return filepath.Join(userDir, ModsFolder)
}

// SavesDir returns the saves folder inside a user data directory.
// Returns an empty string for an empty userDir.
func SavesDir(userDir string) string {
	if userDir == "" {
		return ""
	}
	return filepath.Join(userDir, SavesFolder)
}
