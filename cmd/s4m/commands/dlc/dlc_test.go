package dlc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/logging"
)

func setup(t *testing.T) {
	t.Helper()
	config.Init()
	t.Cleanup(config.Init)
}

func TestResolve(t *testing.T) {
	setup(t)
	game := t.TempDir()
	custom := filepath.Join(t.TempDir(), "titles.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("EP01: Off to Work\n"), 0o644))

	cfg := &config.Config{GameDir: game, CatalogFile: custom}
	dir, label, err := resolve(cfg, logging.ForTest(t))
	require.NoError(t, err)
	assert.Equal(t, game, dir)
	assert.Equal(t, "Off to Work", label(entry.Entry{Base: "EP01"}))
	assert.Equal(t, "Get Together", label(entry.Entry{Base: "EP02"}), "built-in titles fill the gaps")
}

func TestResolve_MissingGameDir(t *testing.T) {
	setup(t)
	_, _, err := resolve(&config.Config{}, logging.ForTest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
}

func TestRunTitles(t *testing.T) {
	setup(t)
	viper.Set(config.KeyCatalogFile, "")

	var buf bytes.Buffer
	require.NoError(t, runTitles(context.Background(), &buf, ""))
	assert.True(t, strings.HasPrefix(buf.String(), "CODE"))
	assert.Contains(t, buf.String(), "Get to Work")

	buf.Reset()
	require.NoError(t, runTitles(context.Background(), &buf, "toml"))
	var decoded map[string]string
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Get to Work", decoded["EP01"])

	err := runTitles(context.Background(), &bytes.Buffer{}, "ini")
	var exitErr *errors.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "enable", "disable", "toggle", "titles"} {
		assert.True(t, names[want], "missing %s", want)
	}
}
