package backup

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/config"
	"github.com/thoreinstein/s4m/internal/errors"
)

// seed writes n archives per label into dir with distinct timestamps.
func seed(t *testing.T, dir string, n int, labels ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, label := range labels {
		for i := range n {
			name := archive.FileName(label, base.Add(time.Duration(i)*time.Minute), 1)
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("zip"), 0o644))
		}
	}
}

func setup(t *testing.T) (backups, user string) {
	t.Helper()
	config.Init()
	backups = filepath.Join(t.TempDir(), "backups")
	user = t.TempDir()
	viper.Set(config.KeyBackupDir, backups)
	viper.Set(config.KeyUserDir, user)
	t.Cleanup(func() {
		config.Init()
		listKind, listJSON, listSnapshots = kindAll, false, false
		pruneKind, pruneKeep = kindAll, -1
	})
	return backups, user
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		kind    string
		want    string
		wantErr bool
	}{
		{"all", "", false},
		{"", "", false},
		{"mods", "Mods", false},
		{"saves", "saves", false},
		{"dlc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := labelFor(tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList(t *testing.T) {
	backups, _ := setup(t)
	seed(t, backups, 2, "Mods", "saves")

	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(&buf))
	out := buf.String()
	assert.Equal(t, 5, strings.Count(out, "\n"), "header plus four rows:\n%s", out)
	assert.Contains(t, out, "Mods_20250301_120100.000.zip")

	listKind = kindSaves
	listJSON = true
	buf.Reset()
	require.NoError(t, runListWithWriter(&buf))
	var recs []archive.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &recs))
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "saves", r.Label)
	}
	assert.True(t, recs[0].CreatedAt.After(recs[1].CreatedAt), "newest first")
}

func TestList_Empty(t *testing.T) {
	setup(t)

	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(&buf))
	assert.Equal(t, "No backups found.\n", buf.String())

	listJSON = true
	buf.Reset()
	require.NoError(t, runListWithWriter(&buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestList_Snapshots(t *testing.T) {
	backups, user := setup(t)
	seed(t, backups, 1, "Mods")
	seed(t, user, 1, "saves_pre_restore")
	seed(t, user, 1, "unrelated")

	listSnapshots = true
	var buf bytes.Buffer
	require.NoError(t, runListWithWriter(&buf))
	out := buf.String()
	assert.Contains(t, out, "saves_pre_restore")
	assert.NotContains(t, out, "unrelated")
	assert.NotContains(t, out, "Mods_2025")
}

func TestPrune(t *testing.T) {
	backups, _ := setup(t)
	seed(t, backups, 4, "Mods", "saves")

	pruneKeep = 1
	var buf bytes.Buffer
	require.NoError(t, runPruneWithWriter(&buf, true))
	assert.Contains(t, buf.String(), "Removed 6 backup(s)")

	recs, err := archive.List(backups, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestPrune_DefaultsToRetention(t *testing.T) {
	backups, _ := setup(t)
	seed(t, backups, 4, "saves")
	viper.Set(config.KeyRetention, 3)

	pruneKind = kindSaves
	require.NoError(t, runPruneWithWriter(&bytes.Buffer{}, false))

	recs, err := archive.List(backups, "saves")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestPrune_NegativeKeep(t *testing.T) {
	setup(t)
	pruneKeep = -2

	err := runPruneWithWriter(&bytes.Buffer{}, true)
	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, errors.ExitUser, exitErr.Code)
}
