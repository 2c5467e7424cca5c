package entry

import (
	"cmp"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/s4m/internal/errors"
)

// dlcGroupOrder is the display order of DLC prefix groups.
var dlcGroupOrder = []string{"FP", "EP", "GP", "SP", "KP"}

// ScanDLC lists the DLC folders directly under gameDir. Folders whose names
// do not follow the DLC pattern are ignored, as are empty placeholder
// folders. Results are ordered by prefix group (FP, EP, GP, SP, KP) and then
// by name.
func ScanDLC(gameDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(gameDir)
	if err != nil {
		return nil, errors.FromOS(err, "reading game directory")
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		e, err := New(filepath.Join(gameDir, de.Name()), KindDir, CategoryDLC)
		if err != nil {
			continue
		}
		empty, err := isEmptyDir(e.Path)
		if err != nil || empty {
			continue
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(dlcGroup(a.Base), dlcGroup(b.Base)),
			cmp.Compare(a.Base, b.Base),
		)
	})
	return entries, nil
}

// ScanMods lists the top-level mod files and folders in modsDir. Files with
// unrecognized extensions and hidden names are ignored. Results are sorted
// case-insensitively by enabled-form name.
func ScanMods(modsDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, errors.FromOS(err, "reading mods directory")
	}

	var entries []Entry
	for _, de := range dirEntries {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		kind := KindFile
		if de.IsDir() {
			kind = KindDir
		} else if !de.Type().IsRegular() {
			continue
		}
		e, err := New(filepath.Join(modsDir, de.Name()), kind, CategoryMod)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Base), strings.ToLower(b.Base)),
			cmp.Compare(a.Name(), b.Name()),
		)
	})
	return entries, nil
}

// Scan dispatches to ScanDLC or ScanMods by category.
func Scan(root string, category Category) ([]Entry, error) {
	if category == CategoryDLC {
		return ScanDLC(root)
	}
	return ScanMods(root)
}

func dlcGroup(base string) int {
	for i, p := range dlcGroupOrder {
		if strings.HasPrefix(base, p) {
			return i
		}
	}
	return len(dlcGroupOrder)
}

func isEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	names, err := f.Readdirnames(1)
	if len(names) > 0 {
		return false, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return true, nil
}
