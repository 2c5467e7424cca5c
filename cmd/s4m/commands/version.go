package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/s4m/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go toolchain of s4m.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		runVersionWithWriter(c.OutOrStdout())
	},
}

func runVersionWithWriter(w io.Writer) {
	fmt.Fprint(w, cmd.Summary())
}
