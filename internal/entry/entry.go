// Package entry models the filesystem objects s4m toggles: DLC folders and
// mod files or folders whose enabled state is encoded in their names.
package entry

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/s4m/internal/errors"
)

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// State is the enabled state encoded in an entry's name.
type State int

const (
	StateEnabled State = iota
	StateDisabled
)

func (s State) String() string {
	if s == StateDisabled {
		return "disabled"
	}
	return "enabled"
}

// Inverse returns the opposite state.
func (s State) Inverse() State {
	if s == StateDisabled {
		return StateEnabled
	}
	return StateDisabled
}

// Category selects the naming rules that apply to an entry.
type Category string

const (
	CategoryDLC Category = "dlc"
	CategoryMod Category = "mod"
)

// ParseCategory converts a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryDLC:
		return CategoryDLC, nil
	case CategoryMod, "mods":
		return CategoryMod, nil
	}
	return "", errors.Newf("unknown category %q (valid: dlc, mod)", s)
}

// Entry is a named file or directory with a name-encoded state.
type Entry struct {
	// Path is the absolute path of the entry under its current name.
	Path string

	Kind     Kind
	State    State
	Category Category

	// Base is the enabled-form name, e.g. "EP01" for "EP01_disabled".
	Base string
}

// New builds an Entry for path, deriving its state from the name.
// Names that do not follow the category's pattern fail with ErrInvalidState.
func New(path string, kind Kind, category Category) (Entry, error) {
	base, state, err := Parse(filepath.Base(path), kind, category)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Path:     path,
		Kind:     kind,
		State:    state,
		Category: category,
		Base:     base,
	}, nil
}

// Name returns the entry's current file name.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Dir returns the directory containing the entry.
func (e Entry) Dir() string {
	return filepath.Dir(e.Path)
}

// Enabled reports whether the entry is in the enabled state.
func (e Entry) Enabled() bool {
	return e.State == StateEnabled
}

// Lookup finds the entry whose current name or enabled-form name equals
// name. Current names win over base names.
func Lookup(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name() == name {
			return e, true
		}
	}
	for _, e := range entries {
		if e.Base == name {
			return e, true
		}
	}
	return Entry{}, false
}
