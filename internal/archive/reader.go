package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

// Open opens a zip archive for reading. A missing file fails with
// ErrSourceNotFound and a file that is not a readable zip with
// ErrUnsupportedSource.
func Open(archivePath string) (*zip.ReadCloser, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, errors.FromOS(err, "archive "+archivePath)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "%s is a directory", archivePath)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, errors.FromOS(err, "opening archive")
		}
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", archivePath), errors.ErrUnsupportedSource)
	}
	return zr, nil
}

// CheckAll runs CheckMember over every member of zr.
func CheckAll(zr *zip.Reader) error {
	for _, f := range zr.File {
		if err := CheckMember(f); err != nil {
			return err
		}
	}
	return nil
}

// CheckMember reports whether f can be extracted. The name must pass
// SafeJoin and the member must be a directory or a regular file; symlinks
// and devices fail with ErrUnsafePath.
func CheckMember(f *zip.File) error {
	if _, err := SafeJoin(".", f.Name); err != nil {
		return err
	}
	if isDirMember(f) || f.Mode().IsRegular() {
		return nil
	}
	return errors.Wrapf(errors.ErrUnsafePath, "member %q is not a regular file", f.Name)
}

func isDirMember(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}

// SafeJoin resolves the archive member name against root. Names that are
// absolute, carry a volume, or climb out of root fail with ErrUnsafePath.
// Backslashes are treated as separators.
func SafeJoin(root, name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	if slashed == "" || strings.HasPrefix(slashed, "/") {
		return "", errors.Wrapf(errors.ErrUnsafePath, "member %q", name)
	}

	cleaned := path.Clean(slashed)
	local := filepath.FromSlash(cleaned)
	if cleaned == "." || !filepath.IsLocal(local) {
		return "", errors.Wrapf(errors.ErrUnsafePath, "member %q", name)
	}
	return filepath.Join(root, local), nil
}

// ExtractAll opens the archive at archivePath and extracts it with
// Extract.
func ExtractAll(archivePath, destRoot string) (int, error) {
	zr, err := Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	return Extract(&zr.Reader, destRoot)
}

// Extract writes every member of zr into destRoot, creating directories as
// needed and replacing files that already exist. All members are checked
// with CheckMember before anything is written, so an archive with an
// unsafe member writes nothing. It returns the number of members
// extracted.
func Extract(zr *zip.Reader, destRoot string) (int, error) {
	targets := make([]string, len(zr.File))
	for i, f := range zr.File {
		if err := CheckMember(f); err != nil {
			return 0, err
		}
		target, err := SafeJoin(destRoot, f.Name)
		if err != nil {
			return 0, err
		}
		targets[i] = target
	}

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return 0, errors.FromOS(err, "creating "+destRoot)
	}

	for i, f := range zr.File {
		if err := ExtractMember(f, targets[i], false); err != nil {
			return i, err
		}
	}
	return len(zr.File), nil
}

// ExtractMember writes a single archive member to target. Directory
// members are created with MkdirAll. File members are written atomically;
// when exclusive is set an existing target fails with an error matching
// fs.ErrExist and is left untouched.
func ExtractMember(f *zip.File, target string, exclusive bool) error {
	mode := f.Mode()

	if isDirMember(f) {
		perm := mode.Perm() &^ 0o022
		if perm == 0 {
			perm = 0o755
		}
		if err := os.MkdirAll(target, perm|0o700); err != nil {
			return errors.FromOS(err, "creating "+target)
		}
		return nil
	}

	if !mode.IsRegular() {
		// Symlinks and devices are never materialized.
		return errors.Wrapf(errors.ErrUnsafePath, "member %q is not a regular file", f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.FromOS(err, "creating "+filepath.Dir(target))
	}

	// Archives written on Windows carry 0666; drop group and world write.
	perm := mode.Perm() &^ 0o022
	if perm == 0 {
		perm = 0o644
	}

	write := func(w io.Writer) error {
		rc, err := f.Open()
		if err != nil {
			return errors.Wrapf(err, "opening member %s", f.Name)
		}
		defer rc.Close()
		if _, err := io.Copy(w, rc); err != nil {
			return errors.Mark(errors.Wrapf(err, "decompressing %s", f.Name), errors.ErrUnsupportedSource)
		}
		return nil
	}

	if exclusive {
		err := fileutil.AtomicCreateExclusive(target, perm, write)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return err
			}
			return errors.FromOS(err, "writing "+target)
		}
	} else if err := fileutil.AtomicCreate(target, perm, write); err != nil {
		return errors.FromOS(err, "writing "+target)
	}

	if mt := f.Modified; !mt.IsZero() {
		// Best effort; the content is already in place.
		_ = os.Chtimes(target, mt, mt)
	}
	return nil
}
