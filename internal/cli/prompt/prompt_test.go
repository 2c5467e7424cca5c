package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

// eofReader simulates immediate EOF (like Ctrl+D).
type eofReader struct{}

func (r *eofReader) Read(_ []byte) (int, error) {
	return 0, io.EOF
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"retry after junk", "maybe\ny\n", false, true},
		{"no trailing newline", "y", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			got, err := NewSelectorWithIO(strings.NewReader(tt.input), &buf).Confirm("Restore?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Restore?")
		})
	}
}

func TestConfirm_Cancelled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := NewSelectorWithIO(&eofReader{}, &buf).Confirm("Restore?", true)
	assert.ErrorIs(t, err, ErrSelectionCancelled)
}

func records() []archive.Record {
	return []archive.Record{
		{Path: "/b/Mods_20260102_030405.000.zip", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)},
		{Path: "/b/Mods_20251231_235959.000.zip", CreatedAt: time.Date(2025, 12, 31, 23, 59, 59, 0, time.Local)},
	}
}

func TestSelectArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"default newest", "\n", 0, nil},
		{"second", "2\n", 1, nil},
		{"out of range", "3\n", 0, ErrInvalidSelection},
		{"not a number", "abc\n", 0, ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			recs := records()
			got, err := NewSelectorWithIO(strings.NewReader(tt.input), &buf).SelectArchive(recs)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, recs[tt.want].Path, got.Path)

			out := buf.String()
			assert.Contains(t, out, "[1] Mods_20260102_030405.000.zip (2026-01-02 03:04:05)")
			assert.Contains(t, out, "Select [1]:")
		})
	}
}

func TestSelectArchive_SingleAndEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.SelectArchive(nil)
	assert.ErrorIs(t, err, ErrNoChoices)

	one := records()[:1]
	got, err := s.SelectArchive(one)
	require.NoError(t, err)
	assert.Equal(t, one[0].Path, got.Path)
	assert.Zero(t, buf.Len(), "no prompt for a single choice")
}

// PickEntries tests replace the package-level finder and must not run in
// parallel.
func TestPickEntries(t *testing.T) {
	orig := findMulti
	defer func() { findMulti = orig }()

	entries := []entry.Entry{
		{Path: "/g/EP01", Base: "EP01", State: entry.StateEnabled},
		{Path: "/g/GP01_disabled", Base: "GP01", State: entry.StateDisabled},
		{Path: "/g/SP01", Base: "SP01", State: entry.StateEnabled},
	}

	var shown []string
	findMulti = func(es []entry.Entry, itemFunc func(int) string, _ ...fuzzyfinder.Option) ([]int, error) {
		for i := range es {
			shown = append(shown, itemFunc(i))
		}
		return []int{2, 0}, nil
	}

	got, err := PickEntries(entries, func(e entry.Entry) string { return e.Base + " pack" })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "EP01", got[0].Base)
	assert.Equal(t, "SP01", got[1].Base)
	assert.Equal(t, "[off] GP01 pack", shown[1])
}

func TestPickEntries_Abort(t *testing.T) {
	orig := findMulti
	defer func() { findMulti = orig }()

	findMulti = func([]entry.Entry, func(int) string, ...fuzzyfinder.Option) ([]int, error) {
		return nil, fuzzyfinder.ErrAbort
	}

	_, err := PickEntries([]entry.Entry{{Base: "EP01"}}, nil)
	assert.ErrorIs(t, err, ErrSelectionCancelled)

	_, err = PickEntries(nil, nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}
