// Package saves summarizes the game's save folder.
package saves

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/s4m/internal/errors"
)

// Ext is the save file extension.
const Ext = ".save"

// snapshotMarker appears in the names of pre-restore snapshot folders left
// by older tools; their contents are not live saves.
const snapshotMarker = "_pre_restore_"

// Summary describes a save folder.
type Summary struct {
	Path string `json:"path"`
	// SaveCount is the number of .save files.
	SaveCount int `json:"save_count"`
	// Latest is the modification time of the newest .save file, zero
	// when there are none.
	Latest time.Time `json:"latest,omitzero"`
	// TotalSize is the size in bytes of every file in the folder.
	TotalSize int64 `json:"total_size"`
}

// Summarize walks dir and returns its summary. Files that cannot be
// inspected are skipped. A missing dir fails with ErrSourceNotFound.
func Summarize(dir string) (*Summary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.FromOS(err, "saves folder "+dir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrSourceNotFound, "%s is not a directory", dir)
	}

	s := &Summary{Path: dir}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return errors.FromOS(err, "reading "+dir)
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.Contains(d.Name(), snapshotMarker) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		s.TotalSize += fi.Size()
		if strings.EqualFold(filepath.Ext(d.Name()), Ext) {
			s.SaveCount++
			if fi.ModTime().After(s.Latest) {
				s.Latest = fi.ModTime()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// FormatSize renders n bytes as "N Bytes", or KB/MB/GB with two decimals.
func FormatSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d Bytes", n)
	case n < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	case n < unit*unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/(unit*unit*unit))
	}
}
