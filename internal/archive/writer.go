package archive

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/logging"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

// maxNameAttempts bounds the "-N" suffixes tried for a clashing name.
const maxNameAttempts = 100

// Writer creates timestamped zip archives of directory trees.
type Writer struct {
	now    func() time.Time
	logger *slog.Logger
	label  string
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the time source used for archive names.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithLabel sets the archive name label. By default the base name of the
// source root is used.
func WithLabel(label string) Option {
	return func(w *Writer) {
		w.label = label
	}
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Backup archives sourceRoot into a new file in destDir named
// <label>_<timestamp>.zip and returns its record.
//
// Member names are relative to sourceRoot, so the archive can be extracted
// anywhere. Directories, including empty ones, are stored as their own
// members. An existing but empty sourceRoot produces an empty archive; a
// missing one fails with ErrSourceNotFound. An existing archive is never
// overwritten.
func (w *Writer) Backup(sourceRoot, destDir string) (*Record, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		return nil, errors.FromOS(err, "backup source "+sourceRoot)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrSourceNotFound, "backup source %s is not a directory", sourceRoot)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, errors.FromOS(err, "creating backup directory")
	}

	label := w.label
	if label == "" {
		label = filepath.Base(filepath.Clean(sourceRoot))
	}
	created := w.now()

	for seq := 1; seq <= maxNameAttempts; seq++ {
		path := filepath.Join(destDir, FileName(label, created, seq))
		if _, err := os.Lstat(path); err == nil {
			continue
		}

		var count int
		err := fileutil.AtomicCreateExclusive(path, 0o644, func(out io.Writer) error {
			var werr error
			count, werr = w.writeTree(out, sourceRoot)
			return werr
		})
		if errors.Is(err, fs.ErrExist) {
			// Lost a race for the name; try the next suffix.
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "writing archive %s", path)
		}

		rec := &Record{
			SourceRoot: sourceRoot,
			Path:       path,
			Label:      label,
			CreatedAt:  created,
			EntryCount: count,
		}
		if st, err := os.Stat(path); err == nil {
			rec.Size = st.Size()
		}
		w.logger.Debug("archive written", "source", sourceRoot, "archive", path, "entries", count)
		return rec, nil
	}

	return nil, errors.Newf("no free archive name for %s in %s", label, destDir)
}

// writeTree streams the zip encoding of root into out and returns the
// number of members written.
func (w *Writer) writeTree(out io.Writer, root string) (int, error) {
	zw := zip.NewWriter(out)
	count := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.FromOS(err, "walking "+path)
		}
		if path == root {
			return nil
		}
		// In-flight temp files belong to other writes, possibly this one.
		if strings.HasPrefix(d.Name(), fileutil.TempPrefix) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrap(err, "computing relative path")
		}
		name := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return errors.FromOS(err, "stat "+path)
		}

		switch {
		case d.IsDir():
			if err := addDir(zw, name, info); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := addFile(zw, name, path, info); err != nil {
				return err
			}
		default:
			w.logger.Debug("skipping non-regular file", "path", path, "mode", info.Mode().String())
			return nil
		}
		count++
		w.logger.Log(context.Background(), logging.LevelTrace, "archived member", "name", name)
		return nil
	})
	if err != nil {
		zw.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, errors.Wrap(err, "finalizing archive")
	}
	return count, nil
}

func addDir(zw *zip.Writer, name string, info fs.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrap(err, "building header")
	}
	hdr.Name = name + "/"
	hdr.Method = zip.Store
	_, err = zw.CreateHeader(hdr)
	return errors.Wrapf(err, "adding directory %s", name)
}

func addFile(zw *zip.Writer, name, path string, info fs.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrap(err, "building header")
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(err, "adding file %s", name)
	}

	src, err := os.Open(path)
	if err != nil {
		return errors.FromOS(err, "opening "+path)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, "compressing %s", name)
	}
	return nil
}
