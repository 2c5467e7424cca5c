// Package backup provides CLI commands for managing Mods and saves backups.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/paths"
)

// Backup kinds accepted by --kind.
const (
	kindAll   = "all"
	kindMods  = "mods"
	kindSaves = "saves"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "List and prune Mods and saves backups",
	Long: `List and prune the archives written by "s4m mods backup" and
"s4m saves backup".

Backups are zip archives named <folder>_<timestamp>.zip in the backup folder
(the backup_dir setting). Pre-restore snapshots live next to the folder they
were taken of and are listed with --snapshots; prune never removes them.`,
	Example: `  # List all backups
  s4m backup list

  # List saves backups as JSON
  s4m backup list --kind saves --json

  # Keep only the 3 newest backups of each folder
  s4m backup prune --keep 3

  See Also:
    s4m mods backup  - Back up the Mods folder
    s4m saves backup - Back up the saves folder`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(pruneCmd)
}

// labelFor maps a --kind value to an archive label; "" means every label.
func labelFor(kind string) (string, error) {
	switch kind {
	case kindAll, "":
		return "", nil
	case kindMods:
		return paths.ModsFolder, nil
	case kindSaves:
		return paths.SavesFolder, nil
	}
	err := errors.Newf("unknown backup kind %q", kind)
	return "", errors.NewUserError(err, "Use --kind mods, saves or all")
}
