package mods

import (
	"github.com/thoreinstein/s4m/cmd/s4m/commands/foldercmd"
	"github.com/thoreinstein/s4m/internal/cli"
)

// folder is the Mods folder as a backup and restore target.
var folder = foldercmd.Folder{
	Noun:    "mods",
	Label:   backupLabel,
	Resolve: cli.ModsDir,
}

func init() {
	Cmd.AddCommand(foldercmd.BackupCommand(folder))
	Cmd.AddCommand(foldercmd.RestoreCommand(folder))
}
