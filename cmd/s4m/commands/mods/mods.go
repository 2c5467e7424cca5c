// Package mods provides CLI commands for managing the Mods folder.
package mods

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/cmd/s4m/commands/entrycmd"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/paths"
)

// backupLabel names Mods backups.
const backupLabel = paths.ModsFolder

var group = entrycmd.Group{
	Noun:         "mods",
	Category:     entry.CategoryMod,
	Resolve:      resolve,
	DetailHeader: "KIND",
	Detail:       func(e entry.Entry) string { return e.Kind.String() },
}

// Cmd is the root mods command.
var Cmd = &cobra.Command{
	Use:   "mods",
	Short: "Manage mods: toggle, install, back up and restore",
	Long: `Manage the mods in the game's Mods folder.

A mod file is disabled by inserting "_disabled" before its extension
(mymod.package becomes mymod_disabled.package) and a mod folder by adding
the suffix to its name. Installing never replaces an existing file.`,
	Example: `  # List mods
  s4m mods list

  # Disable one mod
  s4m mods disable mymod.package

  # Install a downloaded archive
  s4m mods install ~/Downloads/cool-mods.zip

  # Back up the Mods folder, then restore the newest backup
  s4m mods backup
  s4m mods restore

  See Also: s4m backup list`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	Cmd.AddCommand(entrycmd.ListCommand(group))
	Cmd.AddCommand(entrycmd.ToggleCommands(group)...)
}

func resolve(cfg *config.Config, _ *slog.Logger) (string, cli.Labeler, error) {
	dir, err := cli.ModsDir(cfg)
	if err != nil {
		return "", nil, err
	}
	return dir, func(e entry.Entry) string { return e.Name() }, nil
}
