// Package fileutil writes files so that readers see either the old content
// or the complete new content. Temp files are created next to the target
// with the TempPrefix name prefix; scanners skip such names and doctor
// removes the ones an interrupted run leaves behind.
package fileutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/s4m/internal/errors"
)

// tempPattern names in-flight temp files. Scanners skip names with this prefix.
const tempPattern = ".s4m-atomic-*.tmp"

// TempPrefix is the name prefix of temp files created by this package.
const TempPrefix = ".s4m-atomic-"

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicCreate(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicCreate streams content produced by write into path atomically.
// An existing file at path is replaced.
func AtomicCreate(path string, perm os.FileMode, write func(w io.Writer) error) error {
	tmpName, err := writeTemp(path, perm, write)
	if err != nil {
		return err
	}
	defer removeIfExists(tmpName)

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// AtomicCreateExclusive streams content produced by write into path, but
// only if nothing exists at path when the content is published. If path is
// taken the temp file is discarded and an error matching fs.ErrExist is
// returned; the existing file is never touched.
//
// The file appears at path complete or not at all.
func AtomicCreateExclusive(path string, perm os.FileMode, write func(w io.Writer) error) error {
	if _, err := os.Lstat(path); err == nil {
		return errors.Wrapf(fs.ErrExist, "%s", path)
	}

	tmpName, err := writeTemp(path, perm, write)
	if err != nil {
		return err
	}
	defer removeIfExists(tmpName)

	// A hard link fails with EEXIST instead of replacing the target.
	linkErr := os.Link(tmpName, path)
	if linkErr == nil {
		return nil
	}
	if errors.Is(linkErr, fs.ErrExist) {
		return errors.Wrapf(fs.ErrExist, "%s", path)
	}

	// Filesystems without hard links (FAT, some network shares) fall back
	// to check-then-rename.
	if _, err := os.Lstat(path); err == nil {
		return errors.Wrapf(fs.ErrExist, "%s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

func writeTemp(path string, perm os.FileMode, write func(w io.Writer) error) (string, error) {
	dir := filepath.Dir(path)

	// Create temp file in same directory for atomic rename (same filesystem required)
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", errors.FromOS(err, "creating temp file")
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrap(err, "closing temp file")
	}
	return tmpName, nil
}

func removeIfExists(name string) {
	if _, statErr := os.Lstat(name); statErr == nil {
		os.Remove(name)
	}
}

// AtomicWriteYAMLWithPerm writes v as YAML to path atomically with specified permissions.
// Appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAMLWithPerm(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, perm)
}
