package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/doctor"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/paths"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"remove leftover temp files from interrupted runs")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and folder issues",
	Long: `Run diagnostic checks on the s4m configuration and the folders it manages.

Checks that the config file is valid, the game and user folders exist, the
backup folder is writable, no entry exists under both its enabled and
disabled names, and that no interrupted run left files behind.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.OutOrStdout(), configLoadErr)
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

// newDoctorRunner registers the checks over the effective settings. The
// raw values are used so the folders can still be checked when the config
// fails validation.
func newDoctorRunner(loadErr error) *doctor.Runner {
	gameDir := viper.GetString(config.KeyGameDir)
	userDir := viper.GetString(config.KeyUserDir)
	backupDir := viper.GetString(config.KeyBackupDir)

	var modsDir, savesDir string
	if userDir != "" {
		modsDir = paths.ModsDir(userDir)
		savesDir = paths.SavesDir(userDir)
	}

	r := doctor.NewRunner()
	r.AddCheck(doctor.NewConfigCheck(config.FileUsed(), loadErr))
	r.AddCheck(doctor.NewFolderCheck("game_dir", config.KeyGameDir, gameDir, true))
	r.AddCheck(doctor.NewFolderCheck("user_dir", config.KeyUserDir, userDir, true))
	r.AddCheck(doctor.NewFolderCheck("mods_dir", config.KeyUserDir, modsDir, false))
	r.AddCheck(doctor.NewFolderCheck("saves_dir", config.KeyUserDir, savesDir, false))
	r.AddCheck(doctor.NewBackupDirCheck(backupDir))
	r.AddCheck(doctor.NewCollisionCheck("dlc_names", gameDir, entry.CategoryDLC))
	r.AddCheck(doctor.NewCollisionCheck("mod_names", modsDir, entry.CategoryMod))
	r.AddCheck(doctor.NewLeftoverCheck(userDir, backupDir))
	return r
}

func runDoctorWithWriter(w io.Writer, loadErr error) error {
	runner := newDoctorRunner(loadErr)
	report := runner.Run()

	if doctorFix {
		fixes := doctor.FixAll(runner)
		if !doctorQuiet && !doctorJSON {
			printFixes(w, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func printFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s %s: %s\n", statusIcon(doctor.SeverityPass), f.Description, f.Path)
			continue
		}
		fmt.Fprintf(w, "%s %s %s: %v\n", statusIcon(doctor.SeverityError), f.Description, f.Path, f.Error)
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		return cli.WriteJSON(w, report)
	}
	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
