// Package commands implements the CLI commands for s4m.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/s4m/cmd"
	"github.com/thoreinstein/s4m/cmd/s4m/commands/backup"
	"github.com/thoreinstein/s4m/cmd/s4m/commands/dlc"
	"github.com/thoreinstein/s4m/cmd/s4m/commands/flags"
	"github.com/thoreinstein/s4m/cmd/s4m/commands/mods"
	"github.com/thoreinstein/s4m/cmd/s4m/commands/saves"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/logging"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "S4M_DEBUG"

var (
	// configFile holds the value of the --config flag.
	configFile string

	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string

	// assumeYes holds the value of the -y/--yes flag.
	assumeYes bool
)

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// pathFlags maps persistent flags onto the config keys they override.
var pathFlags = map[string]string{
	"game-dir": config.KeyGameDir,
	"user-dir": config.KeyUserDir,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: "+config.FileUsed()+")")
	pf.String("game-dir", "", "game installation folder (overrides game_dir)")
	pf.String("user-dir", "", "game user data folder holding Mods and saves (overrides user_dir)")
	pf.BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmation prompts")
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", "write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("s4m version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(dlc.Cmd)
	rootCmd.AddCommand(mods.Cmd)
	rootCmd.AddCommand(saves.Cmd)
	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	for name, key := range pathFlags {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
	_, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "s4m",
	Short: "Manage The Sims 4 DLC, mods and saves safely",
	Long: `s4m enables and disables DLC packs and mods, installs mods without
overwriting anything, and backs up and restores the Mods and saves folders.

Every change is a rename or a write to a new file. Restores first write a
snapshot of the folder being replaced, so nothing is lost.

Folders come from the config file, S4M_* environment variables or the
--game-dir and --user-dir flags, and are detected when unset.`,
	Example: `  # Show what is configured and found
  s4m status

  # Disable two expansion packs
  s4m dlc disable EP01 EP02

  # Pick mods to toggle interactively
  s4m mods toggle -i

  # Back up saves, then restore the newest backup
  s4m saves backup
  s4m saves restore

  See Also: s4m config, s4m backup`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		flags.SetAssumeYes(assumeYes)
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			v = logging.VerbosityFromEnv(os.Getenv(debugEnv))
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := logging.Options{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		opts.File = f
	}

	logger, err := logging.New(opts)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a config load failure, except for the commands that
// must work with a broken config.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", configCmd.Name(), doctorCmd.Name():
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitSuccess
	}
	exitErr := errors.Classify(err)
	printError(os.Stderr, exitErr)
	return exitErr.Code
}

func printError(w io.Writer, exitErr *errors.ExitError) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), exitErr)
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
