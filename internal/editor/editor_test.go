package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/s4m/internal/errors"
)

func TestDetectEditor_EnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	if got := detectEditor(); got != "nvim" {
		t.Errorf("detectEditor() = %q, want %q", got, "nvim")
	}
}

func TestDetectEditor_EnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	if got := detectEditor(); got != "code" {
		t.Errorf("detectEditor() = %q, want %q", got, "code")
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := detectEditor()

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	} else if _, err := exec.LookPath("notepad"); err == nil {
		want = "notepad"
	}
	if got != want {
		t.Errorf("detectEditor() = %q, want %q", got, want)
	}
}

func TestCommand(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")

	cmd := Command("/tmp/config.yaml")
	if len(cmd.Args) != 2 || cmd.Args[0] != "my-editor" || cmd.Args[1] != "/tmp/config.yaml" {
		t.Errorf("Command() args = %v", cmd.Args)
	}
}

func TestOpen_UsesRunner(t *testing.T) {
	orig := run
	defer func() { run = orig }()

	var ran *exec.Cmd
	run = func(cmd *exec.Cmd) error {
		ran = cmd
		return nil
	}

	t.Setenv("EDITOR", "my-editor")
	target := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(target, []byte("version: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Open(&buf, target); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if ran == nil || ran.Args[1] != target {
		t.Fatalf("editor not invoked with %s", target)
	}
	if !strings.Contains(buf.String(), "Location: "+target) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping integration test on windows (uses shell script mock)")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", mockEditor)

	targetFile := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(targetFile, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Open(&bytes.Buffer{}, targetFile); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), targetFile) {
		t.Errorf("mock editor output = %q, want it to contain %q", string(got), targetFile)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	err := Open(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrSourceNotFound) {
		t.Errorf("Open() error = %v, want ErrSourceNotFound", err)
	}
}

func TestOpen_NoEditor(t *testing.T) {
	t.Setenv("EDITOR", "non-existent-binary-12345")
	t.Setenv("VISUAL", "")

	target := filepath.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(target, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Open(&bytes.Buffer{}, target); err == nil {
		t.Error("expected error for non-existent editor, got nil")
	}
}
