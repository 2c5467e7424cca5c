// Package paths provides path resolution for s4m's own files and for the
// game's directory layout.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. Configuration lives in <ConfigHome>/s4m and
// manual backups default to <DataHome>/s4m/backups.
//
// # Game Layout
//
// The game keeps user content in a data directory (usually
// ~/Documents/Electronic Arts/The Sims 4) containing:
//
//	Mods/   package files, script files and mod folders
//	saves/  save games
//
// [ModsDir] and [SavesDir] derive these from a user data directory. The
// install directory holds the DLC folders directly and needs no helper.
//
// Nothing in this package is consulted by the state-mutation engine; the CLI
// resolves paths here and passes them in explicitly.
package paths
