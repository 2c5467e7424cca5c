// Package foldercmd builds the backup and restore commands shared by the
// mods and saves command groups.
package foldercmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/cmd/s4m/commands/flags"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/logging"
)

// Stdin is the prompt input for restore. Tests replace it.
var Stdin io.Reader = os.Stdin

// Folder describes a folder that is backed up and restored as a whole.
type Folder struct {
	// Noun is the command group name, e.g. "saves".
	Noun string

	// Label names the folder's archives, e.g. "Mods".
	Label string

	// Resolve returns the folder path.
	Resolve func(cfg *config.Config) (string, error)
}

// BackupCommand returns `<noun> backup`.
func BackupCommand(f Folder) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Back up the " + f.Label + " folder to a timestamped archive",
		Long: `Write the whole ` + f.Label + ` folder to a new zip archive in the backup
folder. The archive name carries the time it was made; an existing archive
is never overwritten.`,
		Example: "  s4m " + f.Noun + " backup\n  s4m backup list --kind " + f.Noun,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunBackup(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
}

// RunBackup archives the folder into the configured backup folder.
func RunBackup(ctx context.Context, w io.Writer, f Folder) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	src, err := f.Resolve(cfg)
	if err != nil {
		return err
	}
	_, err = cli.CreateBackup(w, logging.FromContext(ctx), src, cfg.BackupDir, f.Label)
	return err
}

// RestoreCommand returns `<noun> restore [archive]`.
func RestoreCommand(f Folder) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [archive]",
		Short: "Replace the " + f.Label + " folder with the contents of a backup",
		Long: `Replace the ` + f.Label + ` folder with the contents of a backup archive.

Without an argument the backups in the backup folder are listed to choose
from. Before anything is removed, the current folder is written to a
"` + f.Label + `_pre_restore" archive next to it; that snapshot is always kept.
If extraction fails, the previous contents are put back.

You are asked to confirm unless --yes is given.`,
		Example: "  s4m " + f.Noun + " restore\n  s4m " + f.Noun + " restore ~/backups/" + f.Label + "_20250101_120000.000.zip --yes",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var archivePath string
			if len(args) == 1 {
				archivePath = args[0]
			}
			return RunRestore(cmd.Context(), cmd.OutOrStdout(), f, archivePath)
		},
	}
}

// RunRestore restores archivePath, or a chosen backup when it is empty,
// over the folder.
func RunRestore(ctx context.Context, w io.Writer, f Folder, archivePath string) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	dest, err := f.Resolve(cfg)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	_, err = cli.RunRestore(ctx, w, cli.RestoreRequest{
		Archive:       archivePath,
		BackupDir:     cfg.BackupDir,
		Label:         f.Label,
		DestRoot:      dest,
		AssumeYes:     flags.AssumeYes(),
		BackupCommand: "s4m " + f.Noun + " backup",
		In:            Stdin,
		Logger:        logging.FromContext(ctx),
	})
	return err
}
