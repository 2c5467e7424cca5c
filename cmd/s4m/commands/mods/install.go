package mods

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/install"
	"github.com/thoreinstein/s4m/internal/logging"
)

var (
	installJSON   bool
	installDryRun bool
)

func init() {
	installCmd.Flags().BoolVar(&installJSON, "json", false, "output the install report as JSON")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "show what would be installed without writing")
	Cmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <file>",
	Short: "Install a mod file or archive without overwriting",
	Long: `Install a .package or .ts4script file, or every member of a .zip
archive, into the Mods folder.

Files that already exist are skipped and listed, never replaced. Archive
members whose paths would land outside the Mods folder are refused.`,
	Example: `  s4m mods install cool.package
  s4m mods install ~/Downloads/pack.zip --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runInstall(ctx context.Context, w io.Writer, source string) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	dest, err := cli.ModsDir(cfg)
	if err != nil {
		return err
	}

	plan, err := install.NewPlan(source, dest)
	if err != nil {
		return err
	}
	defer plan.Close()

	if installDryRun {
		printPlan(w, plan)
		return nil
	}

	report, err := install.New(install.WithLogger(logging.FromContext(ctx))).Execute(plan)
	if err != nil {
		return err
	}
	if installJSON {
		if err := cli.WriteJSON(w, report); err != nil {
			return err
		}
	} else {
		printReport(w, report)
	}
	if err := report.Err(); err != nil {
		return errors.Classify(err)
	}
	return nil
}

func printPlan(w io.Writer, plan *install.Plan) {
	fmt.Fprintf(w, "Install %s into %s\n", plan.Source, plan.DestRoot)
	for _, s := range plan.Steps {
		fmt.Fprintf(w, "  %-12s %s\n", s.Action, s.Name)
	}
	fmt.Fprintf(w, "\n%d to write, %d to skip (dry run, nothing written)\n",
		plan.Count(install.ActionCopy)+plan.Count(install.ActionExtract),
		plan.Count(install.ActionSkipExists)+plan.Count(install.ActionSkipUnsafe))
}

func printReport(w io.Writer, r *install.Report) {
	fmt.Fprintf(w, "Installed %d, skipped %d into %s\n", r.InstalledCount, r.SkippedCount, r.DestRoot)
	for _, name := range r.SkippedNames {
		fmt.Fprintf(w, "  skipped (exists): %s\n", name)
	}
	for _, name := range r.UnsafeNames {
		fmt.Fprintf(w, "  refused (unsafe): %s\n", name)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  failed (%s): %s: %s\n", f.Kind, f.Name, f.Message)
	}
}
