// Package saves provides CLI commands for the game's saves folder.
package saves

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/cmd/s4m/commands/foldercmd"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/paths"
)

var folder = foldercmd.Folder{
	Noun:    "saves",
	Label:   paths.SavesFolder,
	Resolve: cli.SavesDir,
}

// Cmd is the root saves command.
var Cmd = &cobra.Command{
	Use:   "saves",
	Short: "Inspect, back up and restore save games",
	Long: `Inspect, back up and restore the game's saves folder.

Restoring replaces the whole folder. The current saves are first written to
a "saves_pre_restore" archive that is never removed.`,
	Example: `  # Show save count and size
  s4m saves info

  # Back up, then restore interactively
  s4m saves backup
  s4m saves restore

  See Also: s4m backup list --kind saves`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	Cmd.AddCommand(foldercmd.BackupCommand(folder))
	Cmd.AddCommand(foldercmd.RestoreCommand(folder))
}
