// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (dlc, mods, saves, backup).
package flags

// assumeYes holds the value of the --yes flag.
var assumeYes bool

// AssumeYes reports whether confirmation prompts should be skipped.
func AssumeYes() bool {
	return assumeYes
}

// SetAssumeYes sets the --yes value. The root command calls it after
// parsing; tests call it directly.
func SetAssumeYes(v bool) {
	assumeYes = v
}
