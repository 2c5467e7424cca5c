package restore

import (
	"archive/zip"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/errors"
)

// SnapshotSuffix is appended to the destination folder name to label
// pre-restore snapshots, e.g. "Mods_pre_restore_<timestamp>.zip".
const SnapshotSuffix = "_pre_restore"

// StagingPrefix names the sibling directory holding cleared content until
// extraction finishes.
const StagingPrefix = ".s4m-restore-"

// Phase is a restore transaction state.
type Phase string

const (
	PhaseSnapshotting Phase = "snapshotting"
	PhaseClearing     Phase = "clearing"
	PhaseExtracting   Phase = "extracting"
	PhaseDone         Phase = "done"
	PhaseFailed       Phase = "failed"
)

// Transaction records the progress and outcome of one restore.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	TargetRoot  string    `json:"target_root"`
	ArchivePath string    `json:"archive_path"`
	Phase       Phase     `json:"phase"`
	// FailedIn is the phase that was running when the restore failed.
	FailedIn Phase `json:"failed_in,omitempty"`

	// SnapshotPath is the pre-restore snapshot archive. It is never
	// removed by the restore.
	SnapshotPath string          `json:"snapshot_path,omitempty"`
	Snapshot     *archive.Record `json:"snapshot,omitempty"`
	Restored     *archive.Record `json:"restored,omitempty"`

	// Uncleared lists destination entries that could not be cleared.
	Uncleared []string `json:"uncleared,omitempty"`
	// RolledBack reports whether the destination was returned to its
	// pre-restore content after a failure.
	RolledBack bool `json:"rolled_back,omitempty"`

	Err error `json:"-"`
}

func (tx *Transaction) fail(err error) error {
	tx.FailedIn = tx.Phase
	tx.Phase = PhaseFailed
	tx.Err = err
	return err
}

// Operation restores archives over destination trees.
type Operation struct {
	logger      *slog.Logger
	now         func() time.Time
	snapshotDir string

	rename    func(oldpath, newpath string) error
	removeAll func(path string) error
	extract   func(zr *zip.Reader, destRoot string) (int, error)
}

// Option configures an Operation.
type Option func(*Operation)

// WithLogger sets the logger used for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Operation) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the time source used for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(o *Operation) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSnapshotDir places snapshots in dir instead of the destination's
// parent directory.
func WithSnapshotDir(dir string) Option {
	return func(o *Operation) {
		o.snapshotDir = dir
	}
}

// New creates an Operation.
func New(opts ...Option) *Operation {
	o := &Operation{
		logger:    slog.Default(),
		now:       time.Now,
		rename:    os.Rename,
		removeAll: os.RemoveAll,
		extract:   archive.Extract,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Restore replaces the contents of destRoot with the contents of the
// archive at archivePath.
//
// The current contents are first written to a snapshot archive. If the
// snapshot cannot be written nothing else happens. The destination is then
// cleared and the archive extracted into it. A failure while clearing
// leaves the destination as it was; a failure while extracting removes the
// partial extraction and puts the previous content back. The snapshot is
// kept in every case.
//
// The archive is opened and every member checked before the snapshot, and
// extraction reads from that open handle, so an archive stored inside
// destRoot still restores after clearing moves it aside.
//
// ctx is checked before the snapshot and before clearing. Once clearing
// starts the restore runs to completion or failure.
//
// The returned transaction is never nil and its Err matches the returned
// error.
func (o *Operation) Restore(ctx context.Context, archivePath, destRoot string) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New(),
		TargetRoot:  destRoot,
		ArchivePath: archivePath,
		Phase:       PhaseSnapshotting,
	}
	log := o.logger.With("restore", tx.ID.String())

	zr, err := archive.Open(archivePath)
	if err != nil {
		return tx, tx.fail(err)
	}
	defer zr.Close()
	if err := archive.CheckAll(&zr.Reader); err != nil {
		return tx, tx.fail(err)
	}
	restored := restoredRecord(archivePath)
	if err := ctx.Err(); err != nil {
		return tx, tx.fail(err)
	}

	if err := o.snapshot(tx, log); err != nil {
		return tx, tx.fail(errors.Mark(err, errors.ErrSnapshotFailed))
	}

	if err := ctx.Err(); err != nil {
		return tx, tx.fail(err)
	}

	tx.Phase = PhaseClearing
	log.Info("clearing destination", "path", destRoot)
	staging, err := o.clear(tx)
	if err != nil {
		return tx, tx.fail(errors.Mark(err, errors.ErrPartialClear))
	}

	tx.Phase = PhaseExtracting
	log.Info("extracting archive", "archive", archivePath, "members", len(zr.File))
	n, err := o.extract(&zr.Reader, destRoot)
	if err != nil {
		tx.RolledBack = o.rollback(destRoot, staging, log)
		return tx, tx.fail(errors.Wrap(err, "extracting archive"))
	}

	if err := o.removeAll(staging); err != nil {
		// The content is safe in the snapshot; only disk space is lost.
		log.Warn("could not remove staging directory", "path", staging, "error", err)
	}

	restored.EntryCount = n
	tx.Restored = restored
	tx.Phase = PhaseDone
	log.Info("restore complete", "snapshot", tx.SnapshotPath)
	return tx, nil
}

func (o *Operation) snapshot(tx *Transaction, log *slog.Logger) error {
	dest := tx.TargetRoot
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.FromOS(err, "creating "+dest)
	}

	dir := o.snapshotDir
	if dir == "" {
		dir = filepath.Dir(filepath.Clean(dest))
	}

	w := archive.NewWriter(
		archive.WithClock(o.now),
		archive.WithLogger(log),
		archive.WithLabel(filepath.Base(filepath.Clean(dest))+SnapshotSuffix),
	)
	rec, err := w.Backup(dest, dir)
	if err != nil {
		return errors.Wrap(err, "writing pre-restore snapshot")
	}

	tx.Snapshot = rec
	tx.SnapshotPath = rec.Path
	log.Info("snapshot written", "path", rec.Path, "entries", rec.EntryCount)
	return nil
}

// clear moves every entry of the destination into a sibling staging
// directory. If any entry cannot be moved, the ones already moved are put
// back and the names that failed are recorded in tx.Uncleared.
func (o *Operation) clear(tx *Transaction) (string, error) {
	dest := filepath.Clean(tx.TargetRoot)
	staging := filepath.Join(filepath.Dir(dest), StagingPrefix+tx.ID.String())

	des, err := os.ReadDir(dest)
	if err != nil {
		return "", errors.FromOS(err, "reading "+dest)
	}
	if err := os.Mkdir(staging, 0o700); err != nil {
		return "", errors.FromOS(err, "creating staging directory")
	}

	var moved []string
	var firstErr error
	for _, de := range des {
		name := de.Name()
		if err := o.rename(filepath.Join(dest, name), filepath.Join(staging, name)); err != nil {
			tx.Uncleared = append(tx.Uncleared, name)
			if firstErr == nil {
				firstErr = errors.FromOS(err, "clearing "+name)
			}
			continue
		}
		moved = append(moved, name)
	}

	if firstErr == nil {
		return staging, nil
	}

	for _, name := range moved {
		if err := o.rename(filepath.Join(staging, name), filepath.Join(dest, name)); err != nil {
			o.logger.Error("could not return entry after failed clear", "name", name, "staging", staging, "error", err)
		}
	}
	_ = os.Remove(staging)

	return "", errors.Wrapf(firstErr, "%d of %d entries could not be cleared", len(tx.Uncleared), len(des))
}

// rollback removes whatever extraction left in dest and moves the staged
// content back. It reports whether dest holds its previous content again.
func (o *Operation) rollback(dest, staging string, log *slog.Logger) bool {
	ok := true

	des, err := os.ReadDir(dest)
	if err != nil {
		log.Error("rollback: reading destination", "error", err)
		return false
	}
	for _, de := range des {
		if err := o.removeAll(filepath.Join(dest, de.Name())); err != nil {
			log.Error("rollback: removing partial extraction", "name", de.Name(), "error", err)
			ok = false
		}
	}

	staged, err := os.ReadDir(staging)
	if err != nil {
		log.Error("rollback: reading staging directory", "path", staging, "error", err)
		return false
	}
	for _, de := range staged {
		if err := o.rename(filepath.Join(staging, de.Name()), filepath.Join(dest, de.Name())); err != nil {
			log.Error("rollback: restoring entry", "name", de.Name(), "error", err)
			ok = false
		}
	}

	if ok {
		_ = os.Remove(staging)
		log.Info("rolled back to previous content", "path", dest)
	}
	return ok
}

// restoredRecord describes the archive being restored. It is built before
// clearing since the archive may live inside the destination.
func restoredRecord(archivePath string) *archive.Record {
	rec := &archive.Record{Path: archivePath}
	if label, created, err := archive.ParseFileName(filepath.Base(archivePath)); err == nil {
		rec.Label = label
		rec.CreatedAt = created
	}
	if info, err := os.Stat(archivePath); err == nil {
		rec.Size = info.Size()
	}
	return rec
}
