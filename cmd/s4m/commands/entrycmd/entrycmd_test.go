package entrycmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/cli"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
)

func testGroup(t *testing.T) (Group, string) {
	t.Helper()
	config.Init()
	t.Cleanup(config.Init)

	root := t.TempDir()
	for _, n := range []string{"EP01", "GP01_disabled"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, n, "x.package"), nil, 0o644))
	}
	viper.Set(config.KeyGameDir, root)

	g := Group{
		Noun:     "dlc",
		Category: entry.CategoryDLC,
		Resolve: func(cfg *config.Config, _ *slog.Logger) (string, cli.Labeler, error) {
			return cfg.GameDir, func(e entry.Entry) string { return "pack " + e.Base }, nil
		},
		DetailHeader: "TITLE",
	}
	return g, root
}

func TestRunList(t *testing.T) {
	g, _ := testGroup(t)

	var buf bytes.Buffer
	require.NoError(t, runList(context.Background(), &buf, g, listOptions{}))
	assert.Contains(t, buf.String(), "pack EP01")
	assert.Contains(t, buf.String(), "pack GP01")

	buf.Reset()
	require.NoError(t, runList(context.Background(), &buf, g, listOptions{disabled: true}))
	assert.NotContains(t, buf.String(), "pack EP01")
	assert.Contains(t, buf.String(), "0 enabled, 1 disabled")

	buf.Reset()
	require.NoError(t, runList(context.Background(), &buf, g, listOptions{json: true, enabled: true}))
	assert.Contains(t, buf.String(), `"label": "pack EP01"`)
	assert.NotContains(t, buf.String(), "GP01")
}

func TestRunToggle(t *testing.T) {
	g, root := testGroup(t)

	enabled := entry.StateEnabled
	var buf bytes.Buffer
	require.NoError(t, runToggle(context.Background(), &buf, g, &enabled, []string{"GP01"}, toggleOptions{}))

	_, err := os.Stat(filepath.Join(root, "GP01"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "pack GP01 → GP01")
}

func TestRunToggle_UnknownNameSuggestsList(t *testing.T) {
	g, _ := testGroup(t)

	err := runToggle(context.Background(), &bytes.Buffer{}, g, nil, []string{"EP42"}, toggleOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EP42")
}

func TestToggleCommands(t *testing.T) {
	g, _ := testGroup(t)

	cmds := ToggleCommands(g)
	require.Len(t, cmds, 3)
	assert.Equal(t, "enable", cmds[0].Name())
	assert.Equal(t, "disable", cmds[1].Name())
	assert.Equal(t, "toggle", cmds[2].Name())

	c := cmds[1]
	require.NoError(t, c.Flags().Set("all", "true"))
	assert.Error(t, c.PreRunE(c, []string{"EP01"}), "--all with names")
	require.NoError(t, c.Flags().Set("interactive", "true"))
	assert.Error(t, c.PreRunE(c, nil), "--all with --interactive")
}

func TestListCommand_ExclusiveFilters(t *testing.T) {
	g, _ := testGroup(t)

	c := ListCommand(g)
	require.NoError(t, c.Flags().Set("enabled", "true"))
	require.NoError(t, c.Flags().Set("disabled", "true"))
	assert.Error(t, c.PreRunE(c, nil))
}
