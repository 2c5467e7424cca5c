package backup

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/paths"
)

var (
	pruneKeep int
	pruneKind string
)

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1, "number of backups to keep per folder (default: retention setting)")
	pruneCmd.Flags().StringVar(&pruneKind, "kind", kindAll, "backups to prune: mods, saves or all")
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove all but the newest backups of each folder.

The number kept defaults to the retention setting (5 unless configured).
Pre-restore snapshots are never pruned.`,
	Example: `  # Apply the retention setting
  s4m backup prune

  # Keep only the newest saves backup
  s4m backup prune --kind saves --keep 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPruneWithWriter(cmd.OutOrStdout(), cmd.Flags().Changed("keep"))
	},
}

func runPruneWithWriter(w io.Writer, keepSet bool) error {
	label, err := labelFor(pruneKind)
	if err != nil {
		return err
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	keep := cfg.Retention
	if keepSet {
		if pruneKeep < 0 {
			return errors.NewUserError(errors.Newf("--keep must be >= 0, got %d", pruneKeep), "")
		}
		keep = pruneKeep
	}

	labels := []string{label}
	if label == "" {
		labels = []string{paths.ModsFolder, paths.SavesFolder}
	}

	var removed []archive.Record
	for _, l := range labels {
		r, err := archive.Prune(cfg.BackupDir, l, keep)
		removed = append(removed, r...)
		if err != nil {
			return err
		}
	}

	for _, r := range removed {
		fmt.Fprintf(w, "removed %s\n", filepath.Base(r.Path))
	}
	fmt.Fprintf(w, "Removed %d backup(s), keeping up to %d per folder.\n", len(removed), keep)
	return nil
}
