package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/cli/prompt"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/restore"
	"github.com/thoreinstein/s4m/internal/saves"
)

// CreateBackup archives src into backupDir under label and reports the
// new archive on w.
func CreateBackup(w io.Writer, logger *slog.Logger, src, backupDir, label string) (*archive.Record, error) {
	writer := archive.NewWriter(archive.WithLogger(logger), archive.WithLabel(label))
	rec, err := writer.Backup(src, backupDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "%s Backed up %d entries from %s\n", okMark, rec.EntryCount, src)
	fmt.Fprintf(w, "  %s (%s)\n", rec.Path, saves.FormatSize(rec.Size))
	return rec, nil
}

// RestoreRequest describes one restore invocation.
type RestoreRequest struct {
	// Archive is the archive to restore. Empty lets the user choose among
	// the archives in BackupDir labelled Label.
	Archive   string
	BackupDir string
	Label     string

	DestRoot string

	// AssumeYes skips the confirmation prompt.
	AssumeYes bool

	// BackupCommand is suggested when there is nothing to restore.
	BackupCommand string

	In     io.Reader
	Logger *slog.Logger
}

// RunRestore resolves the archive, confirms, and replaces DestRoot with its
// contents. A nil transaction with a nil error means the user declined.
func RunRestore(ctx context.Context, w io.Writer, req RestoreRequest) (*restore.Transaction, error) {
	if req.Logger == nil {
		req.Logger = slog.Default()
	}
	sel := prompt.NewSelectorWithIO(req.In, w)

	archivePath := req.Archive
	if archivePath == "" {
		records, err := archive.List(req.BackupDir, req.Label)
		if errors.Is(err, archive.ErrNoBackupsFound) {
			return nil, errors.NewUserError(errors.Mark(err, errors.ErrNotFound), "Create one first with: "+req.BackupCommand)
		}
		if err != nil {
			return nil, err
		}
		rec, err := sel.SelectArchive(records)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			fmt.Fprintln(w, "Cancelled.")
			return nil, nil
		}
		if err != nil {
			return nil, errors.NewUserError(err, "Enter the number shown next to the backup")
		}
		archivePath = rec.Path
	}

	if !req.AssumeYes {
		question := fmt.Sprintf("Replace everything in %s with %s?", req.DestRoot, filepath.Base(archivePath))
		ok, err := sel.Confirm(question, false)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			ok, err = false, nil
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintln(w, "Restore cancelled; nothing was changed.")
			return nil, nil
		}
	}

	op := restore.New(restore.WithLogger(req.Logger))
	tx, err := op.Restore(ctx, archivePath, req.DestRoot)
	if err != nil {
		reportFailedRestore(w, tx)
		return tx, err
	}

	fmt.Fprintf(w, "%s Restored %d entries into %s\n", okMark, tx.Restored.EntryCount, tx.TargetRoot)
	fmt.Fprintf(w, "  snapshot of previous contents: %s\n", tx.SnapshotPath)
	return tx, nil
}

func reportFailedRestore(w io.Writer, tx *restore.Transaction) {
	if tx == nil {
		return
	}
	fmt.Fprintf(w, "%s Restore failed during %s\n", failMark, tx.FailedIn)
	if tx.SnapshotPath != "" {
		fmt.Fprintf(w, "  snapshot of previous contents: %s\n", tx.SnapshotPath)
	}
	if tx.RolledBack {
		fmt.Fprintln(w, "  previous contents were put back")
	}
	for _, name := range tx.Uncleared {
		fmt.Fprintf(w, "  could not move: %s\n", name)
	}
}
