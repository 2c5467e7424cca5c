package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/editor"
	"github.com/thoreinstein/s4m/internal/errors"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage s4m configuration",
	Long: `Manage s4m configuration stored in ~/.config/s4m/config.yaml.

Without a subcommand, lists all effective configuration values.

Keys:
  game_dir      game installation folder holding the DLC folders
  user_dir      user data folder holding Mods and saves
  backup_dir    folder receiving backups
  retention     backups kept per folder by "s4m backup prune"
  catalog_file  optional JSON, YAML or TOML file of DLC titles`,
	Example: `  # List all configuration
  s4m config

  # Point s4m at the game
  s4m config set game_dir "/games/The Sims 4"

  # Read one value
  s4m config get retention

See Also: s4m status`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get the effective value of a key, after the config file, S4M_*
environment variables and flags are applied.`,
	Example: `  s4m config get user_dir

See Also: s4m config set, s4m config list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGetWithWriter(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a value in the config file. The value is validated before the
file is written, and the other keys in the file are kept.`,
	Example: `  s4m config set backup_dir ~/s4m-backups
  s4m config set retention 10

See Also: s4m config get, s4m config list`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetWithWriter(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.FileUsed())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in an editor",
	Long: `Open the config file in $EDITOR, falling back to $VISUAL, nano and vi.
The file is created first if it does not exist.`,
	Example: `  # Open config in default editor
  s4m config edit

  # Open with specific editor
  EDITOR=nano s4m config edit

See Also: s4m config list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.FileUsed()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.Set(path, config.KeyVersion, strconv.Itoa(config.CurrentVersion)); err != nil {
				return err
			}
		}
		return editor.Open(cmd.OutOrStdout(), path)
	},
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	val, err := config.Get(key)
	if err != nil {
		return errors.NewUserError(err, "Run: s4m config list")
	}
	if val == "" {
		fmt.Fprintln(w, "not set")
		return nil
	}
	fmt.Fprintln(w, val)
	return nil
}

func runConfigSetWithWriter(w io.Writer, key, value string) error {
	path := config.FileUsed()
	if err := config.Set(path, key, value); err != nil {
		if errors.Is(err, errors.ErrInvalidConfig) {
			return errors.NewUserError(err, "Run: s4m config --help to see valid keys")
		}
		return err
	}
	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigListWithWriter(w io.Writer) error {
	values := config.All()

	// Marshal key by key to keep the display order.
	var doc yaml.Node
	doc.Kind = yaml.MappingNode
	for _, k := range config.Keys {
		var key, val yaml.Node
		key.SetString(k)
		if err := val.Encode(values[k]); err != nil {
			return errors.Wrapf(err, "encoding %s", k)
		}
		doc.Content = append(doc.Content, &key, &val)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}
