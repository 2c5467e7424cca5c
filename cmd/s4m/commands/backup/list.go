package backup

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/paths"
	"github.com/thoreinstein/s4m/internal/restore"
	"github.com/thoreinstein/s4m/internal/saves"
)

var (
	listKind      string
	listJSON      bool
	listSnapshots bool
)

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", kindAll, "backups to list: mods, saves or all")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	listCmd.Flags().BoolVar(&listSnapshots, "snapshots", false, "list pre-restore snapshots instead of backups")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List backups, newest first.

Use --kind to show only Mods or saves backups, and --snapshots to show the
pre-restore snapshots kept in the game's user data folder.`,
	Example: `  # List all backups
  s4m backup list

  # Only Mods backups
  s4m backup list --kind mods

  # Pre-restore snapshots as JSON
  s4m backup list --snapshots --json

  See Also:
    s4m mods restore  - Restore a Mods backup
    s4m saves restore - Restore a saves backup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.OutOrStdout())
	},
}

func runListWithWriter(w io.Writer) error {
	label, err := labelFor(listKind)
	if err != nil {
		return err
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	records, err := listRecords(cfg, label)
	if err != nil {
		return err
	}

	if listJSON {
		if records == nil {
			records = []archive.Record{}
		}
		return cli.WriteJSON(w, records)
	}
	return outputListTabular(w, records)
}

func listRecords(cfg *config.Config, label string) ([]archive.Record, error) {
	dir := cfg.BackupDir
	if listSnapshots {
		if err := cli.RequireDir(cfg.UserDir, config.KeyUserDir); err != nil {
			return nil, err
		}
		dir = cfg.UserDir
	}

	recs, err := archive.List(dir, "")
	if errors.Is(err, archive.ErrNoBackupsFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []archive.Record
	for _, r := range recs {
		if matches(r.Label, label, listSnapshots) {
			out = append(out, r)
		}
	}
	return out, nil
}

// matches reports whether an archive label belongs in the listing.
func matches(recLabel, want string, snapshots bool) bool {
	if snapshots {
		if want == "" {
			return recLabel == paths.ModsFolder+restore.SnapshotSuffix || recLabel == paths.SavesFolder+restore.SnapshotSuffix
		}
		return recLabel == want+restore.SnapshotSuffix
	}
	if want == "" {
		return true
	}
	return recLabel == want
}

func outputListTabular(w io.Writer, records []archive.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No backups found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tCREATED\tSIZE\tFILE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Label,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			saves.FormatSize(r.Size),
			filepath.Base(r.Path))
	}
	return errors.Wrap(tw.Flush(), "writing table")
}
