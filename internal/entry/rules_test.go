package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/s4m/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		kind      Kind
		category  Category
		wantBase  string
		wantState State
		wantErr   bool
	}{
		{"dlc enabled", "EP01", KindDir, CategoryDLC, "EP01", StateEnabled, false},
		{"dlc disabled", "GP01_disabled", KindDir, CategoryDLC, "GP01", StateDisabled, false},
		{"dlc kit", "KP12", KindDir, CategoryDLC, "KP12", StateEnabled, false},
		{"dlc unknown prefix", "Data", KindDir, CategoryDLC, "", StateEnabled, true},
		{"dlc bare prefix", "EP", KindDir, CategoryDLC, "", StateEnabled, true},
		{"dlc lowercase prefix", "ep01", KindDir, CategoryDLC, "", StateEnabled, true},
		{"dlc as file", "EP01", KindFile, CategoryDLC, "", StateEnabled, true},
		{"dlc double marker", "EP01_disabled_disabled", KindDir, CategoryDLC, "", StateEnabled, true},
		{"marker mid-string is enabled", "EP01_disabled_old", KindDir, CategoryDLC, "EP01_disabled_old", StateEnabled, false},
		{"package enabled", "a.package", KindFile, CategoryMod, "a.package", StateEnabled, false},
		{"package disabled", "a_disabled.package", KindFile, CategoryMod, "a.package", StateDisabled, false},
		{"script disabled", "tool_disabled.ts4script", KindFile, CategoryMod, "tool.ts4script", StateDisabled, false},
		{"extension case kept", "Hair.PACKAGE", KindFile, CategoryMod, "Hair.PACKAGE", StateEnabled, false},
		{"mod file marker mid-string", "x_disabled_v2.package", KindFile, CategoryMod, "x_disabled_v2.package", StateEnabled, false},
		{"mod file unknown extension", "readme.txt", KindFile, CategoryMod, "", StateEnabled, true},
		{"mod file bare extension", ".package", KindFile, CategoryMod, "", StateEnabled, true},
		{"mod file only marker", "_disabled.package", KindFile, CategoryMod, "", StateEnabled, true},
		{"mod folder disabled", "CAS Hair_disabled", KindDir, CategoryMod, "CAS Hair", StateDisabled, false},
		{"mod folder only marker", "_disabled", KindDir, CategoryMod, "", StateEnabled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, state, err := Parse(tt.input, tt.kind, tt.category)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidState), "want ErrInvalidState, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestToggledName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     Kind
		category Category
		target   State
		want     string
		wantErr  bool
	}{
		{"disable dlc", "EP01", KindDir, CategoryDLC, StateDisabled, "EP01_disabled", false},
		{"enable dlc", "EP01_disabled", KindDir, CategoryDLC, StateEnabled, "EP01", false},
		{"disable already disabled", "GP01_disabled", KindDir, CategoryDLC, StateDisabled, "", true},
		{"enable already enabled", "EP01", KindDir, CategoryDLC, StateEnabled, "", true},
		{"disable package", "a.package", KindFile, CategoryMod, StateDisabled, "a_disabled.package", false},
		{"enable script", "b_disabled.ts4script", KindFile, CategoryMod, StateEnabled, "b.ts4script", false},
		{"disable upper extension", "Hair.PACKAGE", KindFile, CategoryMod, StateDisabled, "Hair_disabled.PACKAGE", false},
		{"disable mod folder", "Tools", KindDir, CategoryMod, StateDisabled, "Tools_disabled", false},
		{"unrecognized file", "notes.txt", KindFile, CategoryMod, StateDisabled, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToggledName(tt.input, tt.kind, tt.category, tt.target)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrInvalidState), "want ErrInvalidState, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Toggling to the opposite state and back must reproduce the name exactly.
func TestToggledName_Involution(t *testing.T) {
	cases := []struct {
		name     string
		kind     Kind
		category Category
	}{
		{"EP01", KindDir, CategoryDLC},
		{"EP01_disabled", KindDir, CategoryDLC},
		{"SP18_disabled_copy", KindDir, CategoryDLC},
		{"FP01", KindDir, CategoryDLC},
		{"a.package", KindFile, CategoryMod},
		{"a_disabled.package", KindFile, CategoryMod},
		{"My Mod v2.TS4SCRIPT", KindFile, CategoryMod},
		{"x.y.package", KindFile, CategoryMod},
		{"Folder", KindDir, CategoryMod},
		{"Folder_disabled", KindDir, CategoryMod},
		{"Folder.package", KindDir, CategoryMod},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, state, err := Parse(c.name, c.kind, c.category)
			require.NoError(t, err)

			once, err := ToggledName(c.name, c.kind, c.category, state.Inverse())
			require.NoError(t, err)
			assert.NotEqual(t, c.name, once)

			twice, err := ToggledName(once, c.kind, c.category, state)
			require.NoError(t, err)
			assert.Equal(t, c.name, twice)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"dlc": CategoryDLC, "DLC": CategoryDLC, "mod": CategoryMod, "mods": CategoryMod} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCategory("saves")
	assert.Error(t, err)
}

func TestState(t *testing.T) {
	assert.Equal(t, StateDisabled, StateEnabled.Inverse())
	assert.Equal(t, StateEnabled, StateDisabled.Inverse())
	assert.Equal(t, "enabled", StateEnabled.String())
	assert.Equal(t, "directory", KindDir.String())
}

func TestIsModFile(t *testing.T) {
	assert.True(t, IsModFile("a.package"))
	assert.True(t, IsModFile("Tool.TS4SCRIPT"))
	assert.True(t, IsModFile("a_disabled.package"))
	assert.False(t, IsModFile(".package"))
	assert.False(t, IsModFile("mod.zip"))
	assert.False(t, IsModFile("readme"))
}
