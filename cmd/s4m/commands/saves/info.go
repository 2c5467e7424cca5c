package saves

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/saves"
)

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	Cmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show how many saves there are and how much space they use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInfoWithWriter(cmd.OutOrStdout())
	},
}

func runInfoWithWriter(w io.Writer) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	dir, err := cli.SavesDir(cfg)
	if err != nil {
		return err
	}
	sum, err := saves.Summarize(dir)
	if err != nil {
		return err
	}

	if infoJSON {
		return cli.WriteJSON(w, sum)
	}

	fmt.Fprintf(w, "Folder:      %s\n", sum.Path)
	fmt.Fprintf(w, "Saves:       %d\n", sum.SaveCount)
	if sum.Latest.IsZero() {
		fmt.Fprintln(w, "Last saved:  never")
	} else {
		fmt.Fprintf(w, "Last saved:  %s\n", sum.Latest.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "Total size:  %s\n", saves.FormatSize(sum.TotalSize))
	return nil
}
