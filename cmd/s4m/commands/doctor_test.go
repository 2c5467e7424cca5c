package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

func resetDoctorFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		doctorJSON, doctorQuiet, doctorVerbose, doctorFix = false, false, false, false
	})
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return errors.ExitSuccess
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	return exitErr.Code
}

func TestDoctor_Healthy(t *testing.T) {
	setupTestConfig(t)
	setupGameTree(t)
	resetDoctorFlags(t)

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf, nil)
	if code := exitCode(t, err); code != errors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "0 warnings, 0 errors") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDoctor_Verbose(t *testing.T) {
	setupTestConfig(t)
	setupGameTree(t)
	resetDoctorFlags(t)
	doctorVerbose = true

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf, nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"game_dir", "mod_names", "leftovers"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("verbose output missing %s:\n%s", name, buf.String())
		}
	}
}

func TestDoctor_WarningsAndFix(t *testing.T) {
	setupTestConfig(t)
	_, user := setupGameTree(t)
	resetDoctorFlags(t)

	stray := filepath.Join(user, "Mods", fileutil.TempPrefix+"123")
	writeFile(t, stray, "partial")

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf, nil)
	if code := exitCode(t, err); code != errors.ExitUser {
		t.Fatalf("exit code = %d, want %d", code, errors.ExitUser)
	}
	if !strings.Contains(buf.String(), "s4m doctor --fix") {
		t.Errorf("missing fix hint:\n%s", buf.String())
	}

	doctorFix = true
	buf.Reset()
	if err := runDoctorWithWriter(&buf, nil); err != nil {
		t.Fatalf("after fix: %v\n%s", err, buf.String())
	}
	if _, err := os.Stat(stray); !os.IsNotExist(err) {
		t.Error("temp file was not removed")
	}
	if !strings.Contains(buf.String(), "removed") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDoctor_Errors(t *testing.T) {
	setupTestConfig(t)
	resetDoctorFlags(t)
	viper.Set(config.KeyGameDir, filepath.Join(t.TempDir(), "missing"))

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf, errors.New("retention must be >= 0"))
	if code := exitCode(t, err); code != errors.ExitSystem {
		t.Fatalf("exit code = %d, want %d", code, errors.ExitSystem)
	}
	if !strings.Contains(buf.String(), "retention must be >= 0") {
		t.Errorf("config error not reported:\n%s", buf.String())
	}
}

func TestDoctor_JSON(t *testing.T) {
	setupTestConfig(t)
	setupGameTree(t)
	resetDoctorFlags(t)
	doctorJSON = true

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf, nil); err != nil {
		t.Fatal(err)
	}

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(report.Results) == 0 || report.Results[0].Name != "config" || report.Results[0].Status != "pass" {
		t.Errorf("results = %+v", report.Results)
	}
}

func TestDoctor_QuietOutputsNothing(t *testing.T) {
	setupTestConfig(t)
	setupGameTree(t)
	resetDoctorFlags(t)
	doctorQuiet = true

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestValidateDoctorFlags(t *testing.T) {
	resetDoctorFlags(t)
	doctorJSON, doctorQuiet = true, true
	if err := validateDoctorFlags(nil, nil); err == nil {
		t.Error("expected error for --json with --quiet")
	}
	doctorQuiet = false
	if err := validateDoctorFlags(nil, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
