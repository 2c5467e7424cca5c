// Package config provides configuration management for the s4m CLI.
//
// # Configuration File
//
// The default configuration file location is ~/.config/s4m/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	game_dir: /path/to/The Sims 4
//	user_dir: /home/me/Documents/Electronic Arts/The Sims 4
//	backup_dir: /home/me/.local/share/s4m/backups
//	retention: 5
//	catalog_file: /home/me/dlc-names.toml   # optional
//
// Every key can be overridden by an S4M_-prefixed environment variable,
// e.g. S4M_GAME_DIR, and the CLI binds --game-dir and --user-dir on top.
//
// # Loading Configuration
//
// Call [Init] once, then [Load] with an empty path to search the default
// locations with graceful fallback to defaults:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// All loaded configurations are validated. A file that fails validation
// produces an error marked with errors.ErrInvalidConfig.
//
// The state-mutation packages never read configuration; the CLI resolves
// paths here and passes them explicitly.
package config
