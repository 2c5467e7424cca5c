// Package editor launches the user's preferred text editor, used by
// `s4m config edit`.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/thoreinstein/s4m/internal/errors"
)

// run executes the prepared editor command. Tests replace it.
var run = func(cmd *exec.Cmd) error {
	return cmd.Run()
}

// Open launches the editor on path, attached to the process's terminal.
// The file must already exist. w receives the location line.
func Open(w io.Writer, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.FromOS(err, "opening "+path)
	}

	fmt.Fprintf(w, "Location: %s\n", path)

	cmd := Command(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := run(cmd); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Path)
	}
	return nil
}

// Command builds the editor invocation for path without starting it.
func Command(path string) *exec.Cmd {
	return exec.Command(detectEditor(), path)
}

// detectEditor returns the editor command to use.
// Fallback chain: $EDITOR, $VISUAL, nano, vi (notepad on Windows).
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	if _, err := exec.LookPath("notepad"); err == nil {
		return "notepad"
	}
	return "vi"
}
