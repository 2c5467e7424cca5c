package dlc

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/catalog"
	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/logging"
)

var titlesFormat string

func init() {
	titlesCmd.Flags().StringVar(&titlesFormat, "format", "", "print as a catalog file: json, yaml or toml")
	Cmd.AddCommand(titlesCmd)
}

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Show the pack title table",
	Long: `Show the code-to-title table used to label packs.

The built-in table can be replaced by a JSON, YAML or TOML file named by
the catalog_file setting. Use --format to print the current table in a
form that can be edited and saved as that file.`,
	Example: `  # Print the table
  s4m dlc titles

  # Start a custom title file
  s4m dlc titles --format toml > ~/dlc-titles.toml
  s4m config set catalog_file ~/dlc-titles.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTitles(cmd.Context(), cmd.OutOrStdout(), titlesFormat)
	},
}

func runTitles(ctx context.Context, w io.Writer, format string) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	c := cli.Catalog(cfg, logging.FromContext(ctx))

	if format != "" {
		switch f := catalog.Format(format); f {
		case catalog.FormatJSON, catalog.FormatYAML, catalog.FormatTOML:
			data, err := c.Marshal(f)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return errors.Wrap(err, "writing catalog")
		default:
			return errors.NewUserError(errors.Newf("unknown format %q", format), "Use json, yaml or toml")
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTITLE")
	for _, code := range c.Codes() {
		fmt.Fprintf(tw, "%s\t%s\n", code, c.Label(code))
	}
	return errors.Wrap(tw.Flush(), "writing table")
}
