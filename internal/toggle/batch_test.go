package toggle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

func TestMany_ContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	ep := newDLC(t, root, "EP01")
	gp := newDLC(t, root, "GP01_disabled")

	results := New().Many([]entry.Entry{ep, gp}, entry.StateDisabled)
	require.Len(t, results, 2)

	assert.True(t, results[0].Succeeded)
	assert.Equal(t, "EP01_disabled", results[0].NewName)
	assert.Empty(t, results[0].ErrorKind())

	assert.False(t, results[1].Succeeded)
	assert.Equal(t, gp, results[1].Entry)
	assert.Equal(t, errors.KindInvalidState, results[1].ErrorKind())

	assert.Equal(t, []string{"EP01_disabled", "GP01_disabled"}, listNames(t, root))

	ok, failed := Summary(results)
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
}

func TestMany_FailureInMiddleDoesNotBlockLater(t *testing.T) {
	root := t.TempDir()
	a := newDLC(t, root, "EP01")
	b := newDLC(t, root, "EP02")
	newDLC(t, root, "EP02_disabled")
	c := newDLC(t, root, "EP03")

	results := New().Many([]entry.Entry{a, b, c}, entry.StateDisabled)
	require.Len(t, results, 3)
	assert.True(t, results[0].Succeeded)
	assert.Equal(t, errors.KindNameCollision, results[1].ErrorKind())
	assert.True(t, results[2].Succeeded)

	assert.Equal(t, []string{"EP01_disabled", "EP02", "EP02_disabled", "EP03_disabled"}, listNames(t, root))
}

func TestFlipMany(t *testing.T) {
	root := t.TempDir()
	a := newDLC(t, root, "SP01")
	b := newDLC(t, root, "SP02_disabled")

	results := New().FlipMany([]entry.Entry{a, b})
	require.Len(t, results, 2)
	assert.Equal(t, "SP01_disabled", results[0].NewName)
	assert.Equal(t, "SP02", results[1].NewName)
}

func TestMany_Empty(t *testing.T) {
	assert.Empty(t, New().Many(nil, entry.StateEnabled))
}
