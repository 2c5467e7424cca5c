// Package cli holds the pieces shared by the s4m commands: resolving the
// configured folders, selecting entries by name, rendering toggle results
// and driving backup and restore with prompts.
//
// Commands stay thin. They parse flags, call into this package with an
// io.Writer, and return the error for the root command to classify.
package cli
