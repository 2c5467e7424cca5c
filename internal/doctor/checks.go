package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/restore"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

// ConfigCheck reports whether the configuration loaded and validated.
type ConfigCheck struct {
	path    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over the result of loading path.
func NewConfigCheck(path string, loadErr error) *ConfigCheck {
	return &ConfigCheck{path: path, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run reports the load error, if any.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}
	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = c.loadErr.Error()
		result.FixHint = "Run: s4m config edit"
		return result
	}
	result.Status = SeverityPass
	result.Message = "configuration is valid"
	return result
}

// FolderCheck verifies that a configured folder exists.
type FolderCheck struct {
	name     string
	key      string
	path     string
	required bool
}

var _ Check = (*FolderCheck)(nil)

// NewFolderCheck creates a check for the folder at path, configured by key.
// A missing required folder is an error; otherwise it is a warning.
func NewFolderCheck(name, key, path string, required bool) *FolderCheck {
	return &FolderCheck{name: name, key: key, path: path, required: required}
}

// Name returns the unique identifier for this check.
func (c *FolderCheck) Name() string { return c.name }

// Category returns the grouping for this check.
func (c *FolderCheck) Category() string { return "folders" }

// Run stats the folder.
func (c *FolderCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.name,
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	missing := SeverityWarning
	if c.required {
		missing = SeverityError
	}

	if c.path == "" {
		result.Status = missing
		result.Message = c.key + " is not set and could not be detected"
		result.FixHint = "Run: s4m config set " + c.key + " <path>"
		return result
	}

	info, err := os.Stat(c.path)
	switch {
	case err != nil:
		result.Status = missing
		result.Message = fmt.Sprintf("cannot use %s: %v", c.path, err)
		result.FixHint = "Run: s4m config set " + c.key + " <path>"
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = c.path + " is not a directory"
		result.FixHint = "Run: s4m config set " + c.key + " <path>"
	default:
		result.Status = SeverityPass
		result.Message = c.path
	}
	return result
}

// BackupDirCheck verifies that backups can be written.
type BackupDirCheck struct {
	path string
}

var _ Check = (*BackupDirCheck)(nil)

// NewBackupDirCheck creates a check for the backup folder at path.
func NewBackupDirCheck(path string) *BackupDirCheck {
	return &BackupDirCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *BackupDirCheck) Name() string { return "backup_dir" }

// Category returns the grouping for this check.
func (c *BackupDirCheck) Category() string { return "folders" }

// Run writes and removes a probe file in the backup folder.
func (c *BackupDirCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = c.path + " does not exist yet; it is created by the first backup"
		return result
	}

	f, err := os.CreateTemp(c.path, fileutil.TempPrefix+"probe-*")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("backup folder is not writable: %v", err)
		result.FixHint = "Run: s4m config set backup_dir <path>"
		return result
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	result.Status = SeverityPass
	result.Message = c.path + " is writable"
	return result
}

// CollisionCheck finds entries that exist under both their enabled and
// disabled names. Toggling either fails until one is removed.
type CollisionCheck struct {
	name     string
	root     string
	category entry.Category
}

var _ Check = (*CollisionCheck)(nil)

// NewCollisionCheck creates a collision check over root.
func NewCollisionCheck(name, root string, category entry.Category) *CollisionCheck {
	return &CollisionCheck{name: name, root: root, category: category}
}

// Name returns the unique identifier for this check.
func (c *CollisionCheck) Name() string { return c.name }

// Category returns the grouping for this check.
func (c *CollisionCheck) Category() string { return "entries" }

// Run scans root and groups entries by enabled-form name.
func (c *CollisionCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.name,
		Category: c.Category(),
	}

	if c.root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: folder not configured"
		return result
	}
	entries, err := entry.Scan(c.root, c.category)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: " + err.Error()
		return result
	}

	byBase := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		byBase[e.Base]++
		if byBase[e.Base] == 2 {
			dups = append(dups, e.Base)
		}
	}

	if len(dups) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d entries, no duplicates", len(entries))
		return result
	}
	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("present as both enabled and disabled: %s", strings.Join(dups, ", "))
	result.Details = map[string]any{"entries": dups}
	result.FixHint = "Remove or rename one copy of each; toggling them fails with a name collision"
	return result
}

// LeftoverCheck finds what an interrupted run leaves behind: restore
// staging folders holding cleared content, and unpublished temp files.
type LeftoverCheck struct {
	roots []string

	// Set by Run.
	staging []string
	temps   []string

	remove func(string) error
}

var _ Check = (*LeftoverCheck)(nil)
var _ Fixer = (*LeftoverCheck)(nil)

// NewLeftoverCheck creates a check over roots. Empty roots are ignored.
func NewLeftoverCheck(roots ...string) *LeftoverCheck {
	return &LeftoverCheck{roots: roots, remove: os.Remove}
}

// Name returns the unique identifier for this check.
func (c *LeftoverCheck) Name() string { return "leftovers" }

// Category returns the grouping for this check.
func (c *LeftoverCheck) Category() string { return "leftovers" }

// Run walks every root. Staging folders are reported but not entered.
func (c *LeftoverCheck) Run() *CheckResult {
	c.staging, c.temps = nil, nil
	seen := make(map[string]bool)

	for _, root := range c.roots {
		if root == "" {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if seen[path] {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			seen[path] = true

			name := d.Name()
			switch {
			case d.IsDir() && strings.HasPrefix(name, restore.StagingPrefix):
				c.staging = append(c.staging, path)
				return filepath.SkipDir
			case d.Type().IsRegular() && strings.HasPrefix(name, fileutil.TempPrefix):
				c.temps = append(c.temps, path)
			}
			return nil
		})
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}
	switch {
	case len(c.staging) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d interrupted restore folder(s) found", len(c.staging))
		result.Details = map[string]any{"staging": c.staging, "temp_files": c.temps}
		result.FixHint = "These hold the content a restore cleared; move back what you need, then delete them"
		result.Fixable = len(c.temps) > 0
	case len(c.temps) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d unfinished temp file(s) found", len(c.temps))
		result.Details = map[string]any{"temp_files": c.temps}
		result.FixHint = "Run: s4m doctor --fix"
		result.Fixable = true
	default:
		result.Status = SeverityPass
		result.Message = "no leftovers from interrupted runs"
	}
	return result
}
