package entry

import (
	"slices"
	"strings"

	"github.com/thoreinstein/s4m/internal/errors"
)

// DisabledMarker is appended to a disabled entry's name, before the
// extension for mod files.
const DisabledMarker = "_disabled"

// DLCPrefixes are the folder name prefixes that identify DLC packs.
var DLCPrefixes = []string{"EP", "GP", "SP", "FP", "KP"}

// ModExtensions are the recognized mod file extensions, matched
// case-insensitively.
var ModExtensions = []string{".package", ".ts4script"}

// rule encodes a state into a name and back for one (category, kind) pair.
// For every valid base b and state s, parse(format(b, s)) == (b, s).
type rule struct {
	// split separates a name into stem and extension. The marker goes
	// between them.
	split func(name string) (stem, ext string, ok bool)

	// valid reports whether an enabled-form stem belongs to the category.
	valid func(stem string) bool

	pattern string
}

type ruleKey struct {
	category Category
	kind     Kind
}

var rules = map[ruleKey]rule{
	{CategoryDLC, KindDir}: {
		split:   wholeName,
		valid:   isDLCName,
		pattern: "a folder named EP##, GP##, SP##, FP## or KP##",
	},
	{CategoryMod, KindDir}: {
		split:   wholeName,
		valid:   func(stem string) bool { return stem != "" },
		pattern: "a mod folder",
	},
	{CategoryMod, KindFile}: {
		split:   modExtension,
		valid:   func(stem string) bool { return stem != "" },
		pattern: "a .package or .ts4script file",
	},
}

func wholeName(name string) (string, string, bool) {
	return name, "", name != ""
}

func modExtension(name string) (string, string, bool) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return "", "", false
	}
	ext := name[dot:]
	if !slices.Contains(ModExtensions, strings.ToLower(ext)) {
		return "", "", false
	}
	return name[:dot], ext, true
}

// IsModFile reports whether name carries a recognized mod file extension.
func IsModFile(name string) bool {
	stem, _, ok := modExtension(name)
	return ok && stem != ""
}

func isDLCName(stem string) bool {
	for _, p := range DLCPrefixes {
		if len(stem) > len(p) && strings.HasPrefix(stem, p) {
			return true
		}
	}
	return false
}

func lookupRule(kind Kind, category Category) (rule, error) {
	r, ok := rules[ruleKey{category, kind}]
	if !ok {
		return rule{}, errors.Wrapf(errors.ErrInvalidState, "%s entries cannot be a %s", category, kind)
	}
	return r, nil
}

// Parse derives the state and enabled-form name of name. The marker must be
// an exact suffix of the stem; a marker elsewhere in the name is part of the
// name. Names whose enabled form still ends with the marker are rejected so
// the transform stays an involution.
func Parse(name string, kind Kind, category Category) (base string, state State, err error) {
	r, err := lookupRule(kind, category)
	if err != nil {
		return "", StateEnabled, err
	}

	stem, ext, ok := r.split(name)
	if !ok {
		return "", StateEnabled, errors.Wrapf(errors.ErrInvalidState, "%q is not %s", name, r.pattern)
	}

	state = StateEnabled
	if len(stem) > len(DisabledMarker) && strings.HasSuffix(stem, DisabledMarker) {
		stem = strings.TrimSuffix(stem, DisabledMarker)
		state = StateDisabled
	}

	if strings.HasSuffix(stem, DisabledMarker) || !r.valid(stem) {
		return "", StateEnabled, errors.Wrapf(errors.ErrInvalidState, "%q is not %s", name, r.pattern)
	}
	return stem + ext, state, nil
}

// ToggledName returns the name an entry called name must be renamed to in
// order to reach target. It fails with ErrInvalidState when name is already
// in the target state or does not match the category's pattern.
func ToggledName(name string, kind Kind, category Category, target State) (string, error) {
	base, state, err := Parse(name, kind, category)
	if err != nil {
		return "", err
	}
	if state == target {
		return "", errors.Wrapf(errors.ErrInvalidState, "%q is already %s", name, target)
	}
	return Format(base, kind, category, target)
}

// Format renders the name of an entry with enabled-form name base in state.
func Format(base string, kind Kind, category Category, state State) (string, error) {
	r, err := lookupRule(kind, category)
	if err != nil {
		return "", err
	}
	stem, ext, ok := r.split(base)
	if !ok {
		return "", errors.Wrapf(errors.ErrInvalidState, "%q is not %s", base, r.pattern)
	}
	if state == StateDisabled {
		return stem + DisabledMarker + ext, nil
	}
	return base, nil
}
