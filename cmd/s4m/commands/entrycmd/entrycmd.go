// Package entrycmd builds the list, enable, disable and toggle commands
// shared by the dlc and mods command groups.
package entrycmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/logging"
)

// Group describes the folder a command group manages.
type Group struct {
	// Noun is the command group name, e.g. "dlc".
	Noun     string
	Category entry.Category

	// Resolve returns the folder to scan and the display label of its
	// entries.
	Resolve func(cfg *config.Config, logger *slog.Logger) (root string, label cli.Labeler, err error)

	// DetailHeader and Detail fill the middle column of list output.
	// A nil Detail shows the label.
	DetailHeader string
	Detail       cli.Labeler
}

func (g Group) resolve(ctx context.Context) (string, cli.Labeler, *slog.Logger, error) {
	logger := logging.FromContext(ctx)
	cfg, err := cli.LoadConfig()
	if err != nil {
		return "", nil, nil, err
	}
	root, label, err := g.Resolve(cfg, logger)
	if err != nil {
		return "", nil, nil, err
	}
	return root, label, logger, nil
}

type listOptions struct {
	json     bool
	enabled  bool
	disabled bool
}

// ListCommand returns `<noun> list`.
func ListCommand(g Group) *cobra.Command {
	var opts listOptions
	c := &cobra.Command{
		Use:   "list",
		Short: "List " + g.Noun + " and whether each is enabled",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.enabled && opts.disabled {
				return errors.NewUserError(errors.New("flags --enabled and --disabled are mutually exclusive"), "")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), g, opts)
		},
	}
	c.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	c.Flags().BoolVar(&opts.enabled, "enabled", false, "show only enabled entries")
	c.Flags().BoolVar(&opts.disabled, "disabled", false, "show only disabled entries")
	return c
}

func runList(ctx context.Context, w io.Writer, g Group, opts listOptions) error {
	root, label, _, err := g.resolve(ctx)
	if err != nil {
		return err
	}
	entries, err := entry.Scan(root, g.Category)
	if err != nil {
		return err
	}

	filtered := entries[:0]
	for _, e := range entries {
		if (opts.enabled && !e.Enabled()) || (opts.disabled && e.Enabled()) {
			continue
		}
		filtered = append(filtered, e)
	}

	if opts.json {
		return cli.PrintEntriesJSON(w, filtered, label)
	}
	detail := g.Detail
	if detail == nil {
		detail = label
	}
	return cli.PrintEntries(w, filtered, g.DetailHeader, detail)
}

type toggleOptions struct {
	all         bool
	interactive bool
}

// ToggleCommands returns `<noun> enable`, `<noun> disable` and
// `<noun> toggle`.
func ToggleCommands(g Group) []*cobra.Command {
	enabled, disabled := entry.StateEnabled, entry.StateDisabled
	return []*cobra.Command{
		toggleCommand(g, "enable", "Enable "+g.Noun+" by name", &enabled),
		toggleCommand(g, "disable", "Disable "+g.Noun+" by name", &disabled),
		toggleCommand(g, "toggle", "Flip the state of "+g.Noun+" by name", nil),
	}
}

func toggleCommand(g Group, verb, short string, target *entry.State) *cobra.Command {
	var opts toggleOptions
	c := &cobra.Command{
		Use:   verb + " [names...]",
		Short: short,
		Long: short + `.

Names match either the current folder or file name or its enabled form, so
"EP01" and "EP01_disabled" select the same entry. Each entry is renamed on
its own; a failure is reported and the rest still run.`,
		Example: "  s4m " + g.Noun + " " + verb + " <name> [<name>...]\n" +
			"  s4m " + g.Noun + " " + verb + " --interactive",
		PreRunE: func(_ *cobra.Command, args []string) error {
			if opts.interactive && (opts.all || len(args) > 0) {
				return errors.NewUserError(errors.New("--interactive cannot be combined with names or --all"), "")
			}
			if opts.all && len(args) > 0 {
				return errors.NewUserError(errors.New("--all cannot be combined with names"), "")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd.Context(), cmd.OutOrStdout(), g, target, args, opts)
		},
	}
	c.Flags().BoolVar(&opts.all, "all", false, "select every entry")
	c.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick entries with a fuzzy finder")
	return c
}

func runToggle(ctx context.Context, w io.Writer, g Group, target *entry.State, names []string, opts toggleOptions) error {
	root, label, logger, err := g.resolve(ctx)
	if err != nil {
		return err
	}
	return cli.RunToggle(w, cli.ToggleRequest{
		Root:        root,
		Category:    g.Category,
		Target:      target,
		Names:       names,
		All:         opts.all,
		Interactive: opts.interactive,
		ListCommand: "s4m " + g.Noun + " list",
		Label:       label,
		Logger:      logger,
	})
}
