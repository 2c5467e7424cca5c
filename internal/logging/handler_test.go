package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	at := time.Date(2026, 3, 4, 13, 5, 9, 0, time.Local)
	r := slog.NewRecord(at, slog.LevelInfo, "installed", 0)
	r.AddAttrs(slog.Int("written", 2), slog.Bool("dry_run", false))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "13:05:09 INFO  installed written=2 dry_run=false\n", buf.String())
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "no time", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "WARN  no time\n", buf.String())
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(context.Background(), LevelTrace, "member")

	assert.Contains(t, buf.String(), "TRACE member")
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	def := NewHandler(&bytes.Buffer{}, nil)
	assert.False(t, def.Enabled(ctx, slog.LevelDebug))
	assert.True(t, def.Enabled(ctx, slog.LevelInfo))
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).
		With("category", "mod").
		WithGroup("entry")

	logger.Info("toggle", "name", "a.package", slog.Group("target", "state", "disabled"))

	out := buf.String()
	assert.Contains(t, out, "category=mod entry.name=a.package entry.target.state=disabled")
}

func TestHandler_SkipsEmptyAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("msg", slog.Attr{}, "k", "v")

	assert.True(t, strings.HasSuffix(buf.String(), "msg k=v\n"), buf.String())
}

func TestHandler_ShortensHome(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	h.home = filepath.Join(string(filepath.Separator), "home", "simmer")
	logger := slog.New(h)

	logger.Info("snapshot written", "path", filepath.Join(h.home, "Mods_pre_restore.zip"))

	assert.Contains(t, buf.String(), "path="+filepath.Join("~", "Mods_pre_restore.zip"))
}

func TestShortenHome(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "simmer")
	tests := []struct {
		value string
		want  string
	}{
		{home, "~"},
		{filepath.Join(home, "Documents"), filepath.Join("~", "Documents")},
		{home + "2", home + "2"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shortenHome(tt.value, home), tt.value)
	}
	assert.Equal(t, home, shortenHome(home, ""))
}

func TestHandler_QuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("scan", "dir", "The Sims 4")

	assert.Contains(t, buf.String(), `dir="The Sims 4"`)
}
