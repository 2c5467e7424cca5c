// Package dlc provides CLI commands for enabling and disabling DLC packs.
package dlc

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/cmd/s4m/commands/entrycmd"
	"github.com/thoreinstein/s4m/internal/catalog"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
)

// group ties the dlc commands to the game folder.
var group = entrycmd.Group{
	Noun:         "dlc",
	Category:     entry.CategoryDLC,
	Resolve:      resolve,
	DetailHeader: "TITLE",
}

// Cmd is the root dlc command.
var Cmd = &cobra.Command{
	Use:   "dlc",
	Short: "Enable and disable DLC packs",
	Long: `Enable and disable expansion, game, stuff, free and kit packs.

A pack is disabled by renaming its folder in the game directory with a
"_disabled" suffix, e.g. EP01 becomes EP01_disabled. The game skips folders
it does not recognize, and enabling renames the folder back. Pack content
is never modified.`,
	Example: `  # Show every pack and its state
  s4m dlc list

  # Disable packs by code
  s4m dlc disable EP01 GP04

  # Enable everything
  s4m dlc enable --all

  # Choose packs interactively
  s4m dlc toggle -i

  See Also:
    s4m dlc titles - Show the pack title table`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	Cmd.AddCommand(entrycmd.ListCommand(group))
	Cmd.AddCommand(entrycmd.ToggleCommands(group)...)
}

func resolve(cfg *config.Config, logger *slog.Logger) (string, cli.Labeler, error) {
	dir, err := cli.GameDir(cfg)
	if err != nil {
		return "", nil, err
	}
	return dir, titler(cli.Catalog(cfg, logger)), nil
}

// titler labels entries with their catalog title.
func titler(c *catalog.Catalog) cli.Labeler {
	return func(e entry.Entry) string {
		return c.Label(e.Base)
	}
}
